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

// Package vcs defines the version-control backend the observing environment
// drives, and its git implementation.
package vcs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/gitutil"
	"github.com/tribeiro/ts-observing-environment/internal/types"
)

// Backend performs the version-control operations for a single repository.
// All operations are synchronous; batching across repositories is the
// responsibility of the caller.
type Backend interface {
	// Clone clones remote into dest. dest must not already contain a clone.
	Clone(ctx context.Context, remote, dest string) error

	// CurrentVersion returns the version checked out at path: the branch
	// name when on a branch, otherwise a tag pointing at HEAD, otherwise
	// the abbreviated commit SHA.
	CurrentVersion(ctx context.Context, path string) (string, error)

	// CheckoutBranch fetches from origin and checks out the given branch.
	CheckoutBranch(ctx context.Context, path, branch string) error

	// CheckoutVersion fetches from origin and checks out the given version
	// (branch, tag or SHA).
	CheckoutVersion(ctx context.Context, path, version string) error
}

// Git is the production Backend. It shells out to the git executable
// through gitutil.
type Git struct{}

// NewGit returns a git-backed Backend.
func NewGit() *Git {
	return &Git{}
}

var _ Backend = &Git{}

func (g *Git) Clone(ctx context.Context, remote, dest string) error {
	const op errors.Op = "vcs.Clone"

	runner, err := gitutil.NewLocalGitRunner(filepath.Dir(dest))
	if err != nil {
		return errors.E(op, err)
	}
	_, err = runner.Run(ctx, "clone", remote, dest)
	if err != nil {
		gitutil.AmendGitExecError(err, func(e *gitutil.GitExecError) {
			e.Repo = remote
		})
		if execErrorType(err) == gitutil.DestinationExists {
			return errors.E(op, errors.Exist, types.UniquePath(dest), err)
		}
		return errors.E(op, errors.Git, err)
	}
	return nil
}

func (g *Git) CurrentVersion(ctx context.Context, path string) (string, error) {
	const op errors.Op = "vcs.CurrentVersion"

	runner, err := clonedRepoRunner(op, path)
	if err != nil {
		return "", err
	}

	// On a branch the symbolic ref is the version.
	rr, err := runner.Run(ctx, "symbolic-ref", "-q", "--short", "HEAD")
	if err == nil {
		return strings.TrimSpace(rr.Stdout), nil
	}

	// Detached HEAD: prefer a tag pointing at HEAD.
	rr, err = runner.Run(ctx, "describe", "--tags", "--exact-match", "HEAD")
	if err == nil {
		return strings.TrimSpace(rr.Stdout), nil
	}

	rr, err = runner.Run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", errors.E(op, errors.Git, types.UniquePath(path), err)
	}
	return strings.TrimSpace(rr.Stdout), nil
}

func (g *Git) CheckoutBranch(ctx context.Context, path, branch string) error {
	const op errors.Op = "vcs.CheckoutBranch"

	runner, err := clonedRepoRunner(op, path)
	if err != nil {
		return err
	}
	if _, err := runner.Run(ctx, "fetch", "origin"); err != nil {
		gitutil.AmendGitExecError(err, func(e *gitutil.GitExecError) {
			e.Repo = path
		})
		return errors.E(op, errors.Git, types.UniquePath(path), err)
	}
	if _, err := runner.Run(ctx, "checkout", branch); err != nil {
		gitutil.AmendGitExecError(err, func(e *gitutil.GitExecError) {
			e.Repo = path
			e.Ref = branch
		})
		return errors.E(op, errors.Git, types.UniquePath(path), err)
	}
	return nil
}

func (g *Git) CheckoutVersion(ctx context.Context, path, version string) error {
	const op errors.Op = "vcs.CheckoutVersion"

	runner, err := clonedRepoRunner(op, path)
	if err != nil {
		return err
	}
	if _, err := runner.Run(ctx, "fetch", "--tags", "origin"); err != nil {
		gitutil.AmendGitExecError(err, func(e *gitutil.GitExecError) {
			e.Repo = path
		})
		return errors.E(op, errors.Git, types.UniquePath(path), err)
	}
	if _, err := runner.Run(ctx, "checkout", version); err != nil {
		gitutil.AmendGitExecError(err, func(e *gitutil.GitExecError) {
			e.Repo = path
			e.Ref = version
		})
		return errors.E(op, errors.Git, types.UniquePath(path), err)
	}
	return nil
}

// clonedRepoRunner returns a runner rooted at path, failing with an IO error
// when the repository has not been cloned there.
func clonedRepoRunner(op errors.Op, path string) (*gitutil.GitLocalRunner, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, errors.E(op, errors.IO, types.UniquePath(path),
			"repository not found on disk, run setup first")
	}
	runner, err := gitutil.NewLocalGitRunner(path)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return runner, nil
}

func execErrorType(err error) gitutil.GitExecErrorType {
	var execErr *gitutil.GitExecError
	if errors.As(err, &execErr) {
		return execErr.Type
	}
	return gitutil.Unknown
}
