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

// Package baseenv resolves the base (reference) versions of the observing
// environment repositories from the base environment descriptor repository.
package baseenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/gitutil"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRemote is the descriptor repository holding the base
	// environment manifests, one per reference branch.
	DefaultRemote = "https://github.com/lsst-ts/ts_observing_environment.git"

	// ManifestName is the manifest file read from the descriptor
	// repository.
	ManifestName = "base_env.yaml"
)

// Resolver determines the base version of every managed repository for a
// given reference branch. The descriptor repository is fetched fresh on
// every call; nothing is cached between invocations.
type Resolver struct {
	// Remote is the location of the descriptor repository.
	Remote string
}

// NewResolver returns a Resolver reading from the given descriptor remote.
func NewResolver(remote string) *Resolver {
	return &Resolver{Remote: remote}
}

// Resolve returns the base version for every repository the manifest on the
// given branch pins. Repositories absent from the manifest carry no base
// version constraint. Resolution is all-or-nothing: any failure to fetch or
// parse the manifest returns an error and no mapping.
func (r *Resolver) Resolve(ctx context.Context, branch string) (map[string]string, error) {
	const op errors.Op = "baseenv.Resolve"

	dir, err := os.MkdirTemp("", "obs-env-base-")
	if err != nil {
		return nil, errors.E(op, errors.Resolver, err)
	}
	defer os.RemoveAll(dir)

	runner, err := gitutil.NewLocalGitRunner(dir)
	if err != nil {
		return nil, errors.E(op, errors.Resolver, err)
	}
	_, err = runner.Run(ctx, "clone", "--depth=1", "--branch", branch, r.Remote, ".")
	if err != nil {
		gitutil.AmendGitExecError(err, func(e *gitutil.GitExecError) {
			e.Repo = r.Remote
			e.Ref = branch
		})
		return nil, errors.E(op, errors.Resolver, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, errors.E(op, errors.Resolver, fmt.Errorf(
			"manifest %s missing from %s@%s: %w", ManifestName, r.Remote, branch, err))
	}

	versions, err := ParseManifest(data)
	if err != nil {
		return nil, errors.E(op, errors.Resolver, err)
	}
	return versions, nil
}

// manifest is the on-disk shape of the base environment descriptor.
type manifest struct {
	Repositories map[string]string `yaml:"repositories"`
}

// ParseManifest parses a base environment manifest into a repository
// name to version mapping.
func ParseManifest(data []byte) (map[string]string, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("malformed base environment manifest: %w", err)
	}
	if m.Repositories == nil {
		return nil, fmt.Errorf("base environment manifest has no repositories mapping")
	}
	return m.Repositories, nil
}
