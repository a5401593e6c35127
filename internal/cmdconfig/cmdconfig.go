// Copyright 2025 The ts-observing-environment Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmdconfig contains the config command.
package cmdconfig

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tribeiro/ts-observing-environment/internal/baseenv"
	"github.com/tribeiro/ts-observing-environment/internal/obsenv"
	"github.com/tribeiro/ts-observing-environment/internal/printer"
	"github.com/tribeiro/ts-observing-environment/internal/util/cmdutil"
	"github.com/tribeiro/ts-observing-environment/internal/vcs"
)

// NewRunner returns a command runner.
func NewRunner(ctx context.Context, parent string) *Runner {
	r := &Runner{ctx: ctx}
	c := &cobra.Command{
		Use:   "config",
		Short: "Print the observing environment configuration",
		Long: `Print the observing environment configuration.
This only renders the destination directory and the managed repositories; nothing is touched on disk.`,
		RunE: r.runE,
	}
	cmdutil.FixDocs("manage_obs_env", parent, c)
	r.Command = c
	return r
}

// NewCommand returns the cobra command for config.
func NewCommand(ctx context.Context, parent string) *cobra.Command {
	return NewRunner(ctx, parent).Command
}

// Runner contains the run function.
type Runner struct {
	ctx     context.Context
	Command *cobra.Command
}

func (r *Runner) runE(c *cobra.Command, _ []string) error {
	pr := printer.FromContextOrDie(r.ctx)
	env := obsenv.New(cmdutil.EnvPath(c), vcs.NewGit(), baseenv.NewResolver(baseenv.DefaultRemote))
	pr.Printf("%s", env.Summarize())
	return nil
}
