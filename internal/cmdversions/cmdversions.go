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

// Package cmdversions contains the current-versions and base-versions
// commands.
package cmdversions

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tribeiro/ts-observing-environment/internal/baseenv"
	"github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/obsenv"
	"github.com/tribeiro/ts-observing-environment/internal/printer"
	"github.com/tribeiro/ts-observing-environment/internal/util/cmdutil"
	"github.com/tribeiro/ts-observing-environment/internal/vcs"
)

// NewCurrentRunner returns a command runner for current-versions.
func NewCurrentRunner(ctx context.Context, parent string) *CurrentRunner {
	r := &CurrentRunner{ctx: ctx}
	c := &cobra.Command{
		Use:   "current-versions",
		Short: "Show the currently checked out version of every repository",
		Long: `Show the currently checked out version of every repository in the environment.
Repositories that cannot be inspected (for example, not cloned yet) are reported
individually without aborting the listing.`,
		RunE: r.runE,
	}
	cmdutil.FixDocs("manage_obs_env", parent, c)
	r.Command = c
	return r
}

// NewCurrentCommand returns the cobra command for current-versions.
func NewCurrentCommand(ctx context.Context, parent string) *cobra.Command {
	return NewCurrentRunner(ctx, parent).Command
}

// CurrentRunner contains the run function for current-versions.
type CurrentRunner struct {
	ctx     context.Context
	Command *cobra.Command
}

func (r *CurrentRunner) runE(c *cobra.Command, _ []string) error {
	const op errors.Op = "cmdversions.current.runE"
	pr := printer.FromContextOrDie(r.ctx)

	env := obsenv.New(cmdutil.EnvPath(c), vcs.NewGit(), baseenv.NewResolver(baseenv.DefaultRemote))

	pr.Logf(printer.Info, "current environment versions:\n")
	results := env.CurrentVersions(r.ctx)

	t := table.NewWriter()
	t.SetOutputMirror(c.OutOrStdout())
	t.AppendHeader(table.Row{"REPOSITORY", "VERSION"})
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			t.AppendRow(table.Row{res.Repo.Name, fmt.Sprintf("ERROR: %v", res.Err)})
			continue
		}
		t.AppendRow(table.Row{res.Repo.Name, res.Version})
	}
	t.Render()

	if failed > 0 {
		return errors.E(op, fmt.Errorf("failed to read the version of %d of %d repositories",
			failed, len(results)))
	}
	return nil
}

// NewBaseRunner returns a command runner for base-versions.
func NewBaseRunner(ctx context.Context, parent string) *BaseRunner {
	r := &BaseRunner{ctx: ctx}
	c := &cobra.Command{
		Use:   "base-versions",
		Short: "Show the base versions declared for the environment",
		Long: `Show the base (original) version declared for every repository in the environment.
The versions are read from the base environment manifest on the given reference branch.`,
		Example: "  manage_obs_env base-versions --base-env-branch-name main",
		RunE:    r.runE,
	}
	c.Flags().StringVar(&r.baseEnvBranchName, "base-env-branch-name", "main",
		"name of the branch the base environment versions are read from")
	cmdutil.FixDocs("manage_obs_env", parent, c)
	r.Command = c
	return r
}

// NewBaseCommand returns the cobra command for base-versions.
func NewBaseCommand(ctx context.Context, parent string) *cobra.Command {
	return NewBaseRunner(ctx, parent).Command
}

// BaseRunner contains the run function for base-versions.
type BaseRunner struct {
	ctx               context.Context
	Command           *cobra.Command
	baseEnvBranchName string
}

func (r *BaseRunner) runE(c *cobra.Command, _ []string) error {
	const op errors.Op = "cmdversions.base.runE"
	pr := printer.FromContextOrDie(r.ctx)

	env := obsenv.New(cmdutil.EnvPath(c), vcs.NewGit(), baseenv.NewResolver(baseenv.DefaultRemote))

	versions, err := env.BaseVersions(r.ctx, r.baseEnvBranchName)
	if err != nil {
		return errors.E(op, err)
	}

	pr.Logf(printer.Info, "base environment versions for %s:\n", r.baseEnvBranchName)
	t := table.NewWriter()
	t.SetOutputMirror(c.OutOrStdout())
	t.AppendHeader(table.Row{"REPOSITORY", "BASE VERSION"})
	for _, repo := range env.Repos {
		version, ok := versions[repo.Name]
		if !ok {
			pr.Logf(printer.Debug, "%s: no base version declared\n", repo.Name)
			continue
		}
		t.AppendRow(table.Row{repo.Name, version})
	}
	t.Render()
	return nil
}
