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

// Package cmdreset contains the reset command.
package cmdreset

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
		Use:   "reset",
		Short: "Reset the observing environment to its base versions",
		Long: `Reset the observing environment.
This brings every repository in the environment back to the base version declared
for the given reference branch. Repositories the manifest does not pin are left
untouched and reported.`,
		Example: "  manage_obs_env reset --base-env-branch-name main",
		RunE:    r.runE,
	}
	c.Flags().StringVar(&r.baseEnvBranchName, "base-env-branch-name", "main",
		"name of the branch the base environment versions are read from")
	cmdutil.FixDocs("manage_obs_env", parent, c)
	r.Command = c
	return r
}

// NewCommand returns the cobra command for reset.
func NewCommand(ctx context.Context, parent string) *cobra.Command {
	return NewRunner(ctx, parent).Command
}

// Runner contains the run function.
type Runner struct {
	ctx               context.Context
	Command           *cobra.Command
	baseEnvBranchName string
}

func (r *Runner) runE(c *cobra.Command, _ []string) error {
	const op errors.Op = "cmdreset.runE"
	pr := printer.FromContextOrDie(r.ctx)

	env := obsenv.New(cmdutil.EnvPath(c), vcs.NewGit(), baseenv.NewResolver(baseenv.DefaultRemote))

	pr.Logf(printer.Info, "resetting observing environment to %s\n", r.baseEnvBranchName)
	report, err := env.ResetBaseEnvironment(r.ctx, r.baseEnvBranchName)
	if err != nil {
		return errors.E(op, err)
	}

	for _, name := range report.Unpinned {
		pr.Logf(printer.Warn, "%s: no base version declared, left untouched\n", name)
	}
	if len(report.Failures) > 0 {
		for _, failure := range report.Failures {
			pr.Errorf("%s: %v\n", failure.Repo.Name, failure.Err)
		}
		return errors.E(op, fmt.Errorf("failed to reset %d repositories", len(report.Failures)))
	}
	pr.Printf("All repositories set to their base versions.\n")
	return nil
}
