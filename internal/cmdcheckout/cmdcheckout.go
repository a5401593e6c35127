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

// Package cmdcheckout contains the checkout-branch and checkout-version
// commands, the two single-repository operations.
package cmdcheckout

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tribeiro/ts-observing-environment/internal/baseenv"
	"github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/obsenv"
	"github.com/tribeiro/ts-observing-environment/internal/printer"
	"github.com/tribeiro/ts-observing-environment/internal/util/cmdutil"
	"github.com/tribeiro/ts-observing-environment/internal/vcs"
)

// NewBranchRunner returns a command runner for checkout-branch.
func NewBranchRunner(ctx context.Context, parent string) *BranchRunner {
	r := &BranchRunner{ctx: ctx}
	c := &cobra.Command{
		Use:   "checkout-branch",
		Short: "Checkout a branch in one repository",
		Long: `Checkout a branch in a single repository of the observing environment.
The repository must be part of the environment and already cloned.`,
		Example: "  manage_obs_env checkout-branch --repository ts_config_attcs --branch-name develop",
		PreRunE: r.preRunE,
		RunE:    r.runE,
	}
	c.Flags().StringVar(&r.repository, "repository", "", "repository to act on")
	c.Flags().StringVar(&r.branchName, "branch-name", "", "name of the branch to checkout")
	cmdutil.FixDocs("manage_obs_env", parent, c)
	r.Command = c
	return r
}

// NewBranchCommand returns the cobra command for checkout-branch.
func NewBranchCommand(ctx context.Context, parent string) *cobra.Command {
	return NewBranchRunner(ctx, parent).Command
}

// BranchRunner contains the run function for checkout-branch.
type BranchRunner struct {
	ctx        context.Context
	Command    *cobra.Command
	repository string
	branchName string
}

func (r *BranchRunner) preRunE(_ *cobra.Command, _ []string) error {
	const op errors.Op = "cmdcheckout.branch.preRunE"
	if r.repository == "" {
		return errors.E(op, errors.MissingParam,
			"checkout branch action requires a repository, none given")
	}
	return nil
}

func (r *BranchRunner) runE(c *cobra.Command, _ []string) error {
	const op errors.Op = "cmdcheckout.branch.runE"
	pr := printer.FromContextOrDie(r.ctx)

	env := obsenv.New(cmdutil.EnvPath(c), vcs.NewGit(), baseenv.NewResolver(baseenv.DefaultRemote))

	if err := env.CheckoutBranch(r.ctx, r.repository, r.branchName); err != nil {
		return errors.E(op, err)
	}
	pr.Printf("%s: checked out branch %s\n", r.repository, r.branchName)
	return nil
}

// NewVersionRunner returns a command runner for checkout-version.
func NewVersionRunner(ctx context.Context, parent string) *VersionRunner {
	r := &VersionRunner{ctx: ctx}
	c := &cobra.Command{
		Use:   "checkout-version",
		Short: "Checkout a version in one repository",
		Long: `Checkout a version (branch, tag or commit) in a single repository of the
observing environment.`,
		Example: "  manage_obs_env checkout-version --repository ts_config_attcs --branch-name v0.8.1",
		RunE:    r.runE,
	}
	c.Flags().StringVar(&r.repository, "repository", "", "repository to act on")
	c.Flags().StringVar(&r.branchName, "branch-name", "", "version to checkout")
	cmdutil.FixDocs("manage_obs_env", parent, c)
	r.Command = c
	return r
}

// NewVersionCommand returns the cobra command for checkout-version.
func NewVersionCommand(ctx context.Context, parent string) *cobra.Command {
	return NewVersionRunner(ctx, parent).Command
}

// VersionRunner contains the run function for checkout-version.
type VersionRunner struct {
	ctx        context.Context
	Command    *cobra.Command
	repository string
	branchName string
}

func (r *VersionRunner) runE(c *cobra.Command, _ []string) error {
	const op errors.Op = "cmdcheckout.version.runE"
	pr := printer.FromContextOrDie(r.ctx)

	env := obsenv.New(cmdutil.EnvPath(c), vcs.NewGit(), baseenv.NewResolver(baseenv.DefaultRemote))

	if err := env.CheckoutVersion(r.ctx, r.repository, r.branchName); err != nil {
		return errors.E(op, err)
	}
	pr.Printf("%s: checked out version %s\n", r.repository, r.branchName)
	return nil
}
