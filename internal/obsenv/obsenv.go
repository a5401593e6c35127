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

// Package obsenv orchestrates the observing environment: the destination
// directory holding a clone of every registry repository.
//
// Batch operations visit every repository in registry order and collect one
// outcome per repository. A failure on one repository never prevents the
// remaining repositories from being attempted.
package obsenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/registry"
	"github.com/tribeiro/ts-observing-environment/internal/types"
	"github.com/tribeiro/ts-observing-environment/internal/vcs"
	"github.com/xlab/treeprint"
)

// BaseResolver resolves the base version of every managed repository for a
// reference branch. Implemented by baseenv.Resolver.
type BaseResolver interface {
	Resolve(ctx context.Context, branch string) (map[string]string, error)
}

// Environment is the orchestration point for all operations on the
// observing environment.
type Environment struct {
	// Destination is the directory the repositories are cloned under.
	Destination string

	// Repos is the registry the environment operates over, in batch
	// iteration order.
	Repos []registry.Repository

	// Backend performs the per-repository version-control operations.
	Backend vcs.Backend

	// Resolver supplies base versions for the reset and base-versions
	// operations.
	Resolver BaseResolver
}

// New returns an Environment over the full registry.
func New(destination string, backend vcs.Backend, resolver BaseResolver) *Environment {
	return &Environment{
		Destination: destination,
		Repos:       registry.All(),
		Backend:     backend,
		Resolver:    resolver,
	}
}

// RepoPath returns the on-disk path of the named repository under the
// environment destination.
func (e *Environment) RepoPath(name string) string {
	return filepath.Join(e.Destination, name)
}

// CreatePath ensures the destination directory exists. It is idempotent.
func (e *Environment) CreatePath() error {
	const op errors.Op = "obsenv.CreatePath"
	if err := os.MkdirAll(e.Destination, 0755); err != nil {
		return errors.E(op, errors.IO, types.UniquePath(e.Destination), err)
	}
	return nil
}

// CloneResult is the outcome of cloning one repository.
type CloneResult struct {
	Repo registry.Repository
	Path string
	Err  error
}

// CloneRepositories clones every registry repository under the destination
// directory. It returns exactly one result per repository, in registry
// order, regardless of how many clones fail.
func (e *Environment) CloneRepositories(ctx context.Context) []CloneResult {
	const op errors.Op = "obsenv.CloneRepositories"

	results := make([]CloneResult, 0, len(e.Repos))
	for _, repo := range e.Repos {
		path := e.RepoPath(repo.Name)
		err := e.Backend.Clone(ctx, repo.Remote, path)
		if err != nil {
			err = errors.E(op, types.RepoName(repo.Name), err)
		}
		results = append(results, CloneResult{Repo: repo, Path: path, Err: err})
	}
	return results
}

// Summarize renders the environment configuration: the destination
// directory and the registry contents. It performs no I/O.
func (e *Environment) Summarize() string {
	tree := treeprint.NewWithRoot(e.Destination)
	for _, repo := range e.Repos {
		tree.AddMetaBranch(repo.Name, repo.Remote)
	}
	return tree.String()
}

// VersionResult is the outcome of querying one repository's version.
type VersionResult struct {
	Repo    registry.Repository
	Version string
	Err     error
}

// CurrentVersions reports the currently checked out version of every
// registry repository. A repository missing on disk yields a per-repository
// error, not a batch failure.
func (e *Environment) CurrentVersions(ctx context.Context) []VersionResult {
	const op errors.Op = "obsenv.CurrentVersions"

	results := make([]VersionResult, 0, len(e.Repos))
	for _, repo := range e.Repos {
		version, err := e.Backend.CurrentVersion(ctx, e.RepoPath(repo.Name))
		if err != nil {
			err = errors.E(op, types.RepoName(repo.Name), err)
		}
		results = append(results, VersionResult{Repo: repo, Version: version, Err: err})
	}
	return results
}

// BaseVersions returns the base version mapping declared for the given
// reference branch. Unlike the batch operations this is all-or-nothing: a
// resolver failure yields no mapping at all.
func (e *Environment) BaseVersions(ctx context.Context, branch string) (map[string]string, error) {
	const op errors.Op = "obsenv.BaseVersions"
	versions, err := e.Resolver.Resolve(ctx, branch)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return versions, nil
}

// ResetFailure records one repository that could not be reset to its base
// version.
type ResetFailure struct {
	Repo registry.Repository
	Err  error
}

// ResetReport is the outcome of resetting the environment. Repositories
// that were reset successfully appear in neither list.
type ResetReport struct {
	// Failures holds one entry per repository whose checkout failed.
	Failures []ResetFailure

	// Unpinned names the registry repositories the manifest declares no
	// base version for. They are left untouched.
	Unpinned []string
}

// ResetBaseEnvironment checks out every repository at the base version
// declared for the given reference branch. If the base versions cannot be
// resolved the reset fails atomically and no checkout is attempted;
// otherwise every pinned repository is attempted and per-repository
// failures are collected in the report.
func (e *Environment) ResetBaseEnvironment(ctx context.Context, branch string) (ResetReport, error) {
	const op errors.Op = "obsenv.ResetBaseEnvironment"

	versions, err := e.Resolver.Resolve(ctx, branch)
	if err != nil {
		return ResetReport{}, errors.E(op, err)
	}

	var report ResetReport
	for _, repo := range e.Repos {
		version, ok := versions[repo.Name]
		if !ok {
			report.Unpinned = append(report.Unpinned, repo.Name)
			continue
		}
		if err := e.Backend.CheckoutVersion(ctx, e.RepoPath(repo.Name), version); err != nil {
			report.Failures = append(report.Failures, ResetFailure{
				Repo: repo,
				Err:  errors.E(op, types.RepoName(repo.Name), err),
			})
		}
	}
	return report, nil
}

// CheckoutBranch checks out a branch in a single repository. The name must
// be part of the registry; unknown names fail without touching the backend.
func (e *Environment) CheckoutBranch(ctx context.Context, name, branch string) error {
	const op errors.Op = "obsenv.CheckoutBranch"

	repo, err := e.lookup(op, name)
	if err != nil {
		return err
	}
	if err := e.Backend.CheckoutBranch(ctx, e.RepoPath(repo.Name), branch); err != nil {
		return errors.E(op, types.RepoName(repo.Name), err)
	}
	return nil
}

// CheckoutVersion checks out a version (branch, tag or SHA) in a single
// repository, with the same lookup discipline as CheckoutBranch.
func (e *Environment) CheckoutVersion(ctx context.Context, name, version string) error {
	const op errors.Op = "obsenv.CheckoutVersion"

	repo, err := e.lookup(op, name)
	if err != nil {
		return err
	}
	if err := e.Backend.CheckoutVersion(ctx, e.RepoPath(repo.Name), version); err != nil {
		return errors.E(op, types.RepoName(repo.Name), err)
	}
	return nil
}

func (e *Environment) lookup(op errors.Op, name string) (registry.Repository, error) {
	for _, repo := range e.Repos {
		if repo.Name == name {
			return repo, nil
		}
	}
	return registry.Repository{}, errors.E(op, errors.UnknownRepo, types.RepoName(name),
		fmt.Errorf("repository %q is not part of the observing environment", name))
}
