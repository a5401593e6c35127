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

// Package registry defines the closed set of repositories that make up the
// observing environment. The set is static; repositories are never
// registered or removed at runtime.
package registry

// Repository describes one repository managed as part of the observing
// environment.
type Repository struct {
	// Name is the unique, stable identifier of the repository. It is also
	// the directory name of the clone under the environment destination.
	Name string

	// Remote is the location the repository is cloned from.
	Remote string
}

// repositories is the full registry, in the order batch operations iterate.
var repositories = []Repository{
	{Name: "atmospec", Remote: "https://github.com/lsst-ts/atmospec.git"},
	{Name: "cwfs", Remote: "https://github.com/lsst-ts/cwfs.git"},
	{Name: "spectractor", Remote: "https://github.com/lsst-ts/Spectractor.git"},
	{Name: "summit_extras", Remote: "https://github.com/lsst-sitcom/summit_extras.git"},
	{Name: "summit_utils", Remote: "https://github.com/lsst-sitcom/summit_utils.git"},
	{Name: "ts_config_attcs", Remote: "https://github.com/lsst-ts/ts_config_attcs.git"},
	{Name: "ts_config_latiss", Remote: "https://github.com/lsst-ts/ts_config_latiss.git"},
	{Name: "ts_config_ocs", Remote: "https://github.com/lsst-ts/ts_config_ocs.git"},
	{Name: "ts_externalscripts", Remote: "https://github.com/lsst-ts/ts_externalscripts.git"},
	{Name: "ts_observatory_control", Remote: "https://github.com/lsst-ts/ts_observatory_control.git"},
	{Name: "ts_observing_utilities", Remote: "https://github.com/lsst-ts/ts_observing_utilities.git"},
	{Name: "ts_standardscripts", Remote: "https://github.com/lsst-ts/ts_standardscripts.git"},
}

// All returns every repository in the registry, in iteration order. The
// returned slice is a copy; callers may not mutate the registry.
func All() []Repository {
	out := make([]Repository, len(repositories))
	copy(out, repositories)
	return out
}

// Lookup returns the repository with the given name, if it is part of the
// registry.
func Lookup(name string) (Repository, bool) {
	for _, r := range repositories {
		if r.Name == name {
			return r, true
		}
	}
	return Repository{}, false
}

// Names returns the names of every repository in the registry, in iteration
// order.
func Names() []string {
	out := make([]string, 0, len(repositories))
	for _, r := range repositories {
		out = append(out, r.Name)
	}
	return out
}
