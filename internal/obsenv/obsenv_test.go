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

package obsenv_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tribeiro/ts-observing-environment/internal/errors"
	. "github.com/tribeiro/ts-observing-environment/internal/obsenv"
	"github.com/tribeiro/ts-observing-environment/internal/registry"
)

// fakeBackend is an in-memory vcs.Backend recording every call, with
// failures injected per repository name.
type fakeBackend struct {
	cloneErrs    map[string]error
	versions     map[string]string
	versionErrs  map[string]error
	checkoutErrs map[string]error

	cloneCalls    []string
	branchCalls   map[string]string
	checkoutCalls map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		cloneErrs:     map[string]error{},
		versions:      map[string]string{},
		versionErrs:   map[string]error{},
		checkoutErrs:  map[string]error{},
		branchCalls:   map[string]string{},
		checkoutCalls: map[string]string{},
	}
}

func (f *fakeBackend) Clone(_ context.Context, _, dest string) error {
	name := filepath.Base(dest)
	f.cloneCalls = append(f.cloneCalls, name)
	return f.cloneErrs[name]
}

func (f *fakeBackend) CurrentVersion(_ context.Context, path string) (string, error) {
	name := filepath.Base(path)
	if err := f.versionErrs[name]; err != nil {
		return "", err
	}
	return f.versions[name], nil
}

func (f *fakeBackend) CheckoutBranch(_ context.Context, path, branch string) error {
	name := filepath.Base(path)
	f.branchCalls[name] = branch
	return f.checkoutErrs[name]
}

func (f *fakeBackend) CheckoutVersion(_ context.Context, path, version string) error {
	name := filepath.Base(path)
	f.checkoutCalls[name] = version
	return f.checkoutErrs[name]
}

// fakeResolver is an in-memory BaseResolver.
type fakeResolver struct {
	versions map[string]string
	err      error
	calls    int
}

func (f *fakeResolver) Resolve(context.Context, string) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.versions, nil
}

func newTestEnv(backend *fakeBackend, resolver *fakeResolver) *Environment {
	return &Environment{
		Destination: "/obs-env",
		Repos: []registry.Repository{
			{Name: "repo_a", Remote: "https://example.com/repo_a.git"},
			{Name: "repo_b", Remote: "https://example.com/repo_b.git"},
			{Name: "repo_c", Remote: "https://example.com/repo_c.git"},
		},
		Backend:  backend,
		Resolver: resolver,
	}
}

func TestCloneRepositoriesNeverShortCircuits(t *testing.T) {
	backend := newFakeBackend()
	backend.cloneErrs["repo_b"] = fmt.Errorf("remote unreachable")
	env := newTestEnv(backend, &fakeResolver{})

	results := env.CloneRepositories(context.TODO())

	require.Len(t, results, 3)
	assert.Equal(t, "repo_a", results[0].Repo.Name)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join("/obs-env", "repo_a"), results[0].Path)

	assert.Equal(t, "repo_b", results[1].Repo.Name)
	assert.Error(t, results[1].Err)

	assert.Equal(t, "repo_c", results[2].Repo.Name)
	assert.NoError(t, results[2].Err)

	// every repository was attempted despite repo_b failing
	assert.Equal(t, []string{"repo_a", "repo_b", "repo_c"}, backend.cloneCalls)
}

func TestCurrentVersionsCollectsPerRepoErrors(t *testing.T) {
	backend := newFakeBackend()
	backend.versions["repo_a"] = "main"
	backend.versions["repo_c"] = "v1.2.0"
	backend.versionErrs["repo_b"] = fmt.Errorf("repository not found on disk")
	env := newTestEnv(backend, &fakeResolver{})

	results := env.CurrentVersions(context.TODO())

	require.Len(t, results, 3)
	assert.Equal(t, "main", results[0].Version)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "v1.2.0", results[2].Version)
}

func TestResetBaseEnvironmentReportsOnlyFailures(t *testing.T) {
	backend := newFakeBackend()
	backend.checkoutErrs["repo_a"] = fmt.Errorf("checkout failed")
	resolver := &fakeResolver{versions: map[string]string{
		"repo_a": "v1",
		"repo_b": "v2",
		"repo_c": "v3",
	}}
	env := newTestEnv(backend, resolver)

	report, err := env.ResetBaseEnvironment(context.TODO(), "main")
	require.NoError(t, err)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "repo_a", report.Failures[0].Repo.Name)
	assert.Error(t, report.Failures[0].Err)
	assert.Empty(t, report.Unpinned)

	// the successful repositories were checked out at their base versions
	expected := map[string]string{"repo_a": "v1", "repo_b": "v2", "repo_c": "v3"}
	if diff := cmp.Diff(expected, backend.checkoutCalls); diff != "" {
		t.Errorf("unexpected checkouts (-want +got):\n%s", diff)
	}
}

func TestResetBaseEnvironmentReportsUnpinned(t *testing.T) {
	backend := newFakeBackend()
	resolver := &fakeResolver{versions: map[string]string{"repo_b": "v2"}}
	env := newTestEnv(backend, resolver)

	report, err := env.ResetBaseEnvironment(context.TODO(), "main")
	require.NoError(t, err)

	assert.Empty(t, report.Failures)
	assert.Equal(t, []string{"repo_a", "repo_c"}, report.Unpinned)
	assert.Equal(t, map[string]string{"repo_b": "v2"}, backend.checkoutCalls)
}

func TestResetBaseEnvironmentResolverFailureIsAtomic(t *testing.T) {
	backend := newFakeBackend()
	resolver := &fakeResolver{err: errors.E(errors.Op("baseenv.Resolve"), errors.Resolver,
		fmt.Errorf("manifest unreachable"))}
	env := newTestEnv(backend, resolver)

	_, err := env.ResetBaseEnvironment(context.TODO(), "main")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Resolver))

	// no checkout may be attempted when resolution fails
	assert.Empty(t, backend.checkoutCalls)
}

func TestBaseVersionsDelegatesToResolver(t *testing.T) {
	resolver := &fakeResolver{versions: map[string]string{"repo_a": "v1"}}
	env := newTestEnv(newFakeBackend(), resolver)

	versions, err := env.BaseVersions(context.TODO(), "main")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"repo_a": "v1"}, versions)
	assert.Equal(t, 1, resolver.calls)
}

func TestCheckoutBranchUnknownRepository(t *testing.T) {
	backend := newFakeBackend()
	env := newTestEnv(backend, &fakeResolver{})

	err := env.CheckoutBranch(context.TODO(), "repo_z", "feature-x")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnknownRepo))

	// the backend must not be touched for unknown repositories
	assert.Empty(t, backend.branchCalls)
}

func TestCheckoutBranch(t *testing.T) {
	backend := newFakeBackend()
	env := newTestEnv(backend, &fakeResolver{})

	require.NoError(t, env.CheckoutBranch(context.TODO(), "repo_b", "feature-x"))
	assert.Equal(t, map[string]string{"repo_b": "feature-x"}, backend.branchCalls)
}

func TestCheckoutVersionUnknownRepository(t *testing.T) {
	backend := newFakeBackend()
	env := newTestEnv(backend, &fakeResolver{})

	err := env.CheckoutVersion(context.TODO(), "repo_z", "v1")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnknownRepo))
	assert.Empty(t, backend.checkoutCalls)
}

func TestCheckoutVersion(t *testing.T) {
	backend := newFakeBackend()
	env := newTestEnv(backend, &fakeResolver{})

	require.NoError(t, env.CheckoutVersion(context.TODO(), "repo_c", "v3"))
	assert.Equal(t, map[string]string{"repo_c": "v3"}, backend.checkoutCalls)
}

func TestSummarize(t *testing.T) {
	env := newTestEnv(newFakeBackend(), &fakeResolver{})

	summary := env.Summarize()
	assert.Contains(t, summary, "/obs-env")
	for _, repo := range env.Repos {
		assert.Contains(t, summary, repo.Name)
		assert.Contains(t, summary, repo.Remote)
	}
}

func TestCreatePath(t *testing.T) {
	env := newTestEnv(newFakeBackend(), &fakeResolver{})
	env.Destination = filepath.Join(t.TempDir(), "nested", "obs-env")

	require.NoError(t, env.CreatePath())
	info, err := os.Stat(env.Destination)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	require.NoError(t, env.CreatePath())
}

func TestCreatePathFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	env := newTestEnv(newFakeBackend(), &fakeResolver{})
	env.Destination = filepath.Join(blocker, "obs-env")

	err := env.CreatePath()
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.IO))
}
