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

// Package cmdsetup contains the setup command.
package cmdsetup

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tribeiro/ts-observing-environment/internal/baseenv"
	"github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/obsenv"
	"github.com/tribeiro/ts-observing-environment/internal/printer"
	"github.com/tribeiro/ts-observing-environment/internal/util/cmdutil"
	"github.com/tribeiro/ts-observing-environment/internal/vcs"
)

// NewRunner returns a command runner.
func NewRunner(ctx context.Context, parent string) *Runner {
	r := &Runner{ctx: ctx}
	c := &cobra.Command{
		Use:   "setup",
		Short: "Set up the observing environment",
		Long: `Set up the observing environment.
This creates the destination directory and clones all managed repositories into it.
Repositories that are already present are reported and left untouched.`,
		Example: "  manage_obs_env setup --env-path /net/obs-env/auto_base_packages",
		RunE:    r.runE,
	}
	cmdutil.FixDocs("manage_obs_env", parent, c)
	r.Command = c
	return r
}

// NewCommand returns the cobra command for setup.
func NewCommand(ctx context.Context, parent string) *cobra.Command {
	return NewRunner(ctx, parent).Command
}

// Runner contains the run function.
type Runner struct {
	ctx     context.Context
	Command *cobra.Command
}

func (r *Runner) runE(c *cobra.Command, _ []string) error {
	const op errors.Op = "cmdsetup.runE"
	pr := printer.FromContextOrDie(r.ctx)

	env := obsenv.New(cmdutil.EnvPath(c), vcs.NewGit(), baseenv.NewResolver(baseenv.DefaultRemote))

	pr.Logf(printer.Debug, "creating path %s\n", env.Destination)
	if err := env.CreatePath(); err != nil {
		return errors.E(op, err)
	}

	pr.Logf(printer.Debug, "cloning repositories\n")
	results := env.CloneRepositories(r.ctx)

	failed := 0
	for _, res := range results {
		switch {
		case res.Err == nil:
			pr.Printf("%s: cloned at %s\n", res.Repo.Name, res.Path)
		case errors.IsKind(res.Err, errors.Exist):
			pr.Printf("%s: already present at %s, skipped\n", res.Repo.Name, res.Path)
		default:
			failed++
			pr.Errorf("%s: failed to clone: %v\n", res.Repo.Name, res.Err)
		}
	}
	if failed > 0 {
		return errors.E(op, fmt.Errorf("failed to clone %d of %d repositories", failed, len(results)))
	}
	return nil
}
