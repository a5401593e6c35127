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

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/tribeiro/ts-observing-environment/internal/errors"
	"github.com/tribeiro/ts-observing-environment/internal/types"
)

func TestE(t *testing.T) {
	err := E(Op("obsenv.clone"), types.RepoName("atmospec"), Git, fmt.Errorf("exit status 128"))

	var e *Error
	require.True(t, As(err, &e))
	assert.Equal(t, Op("obsenv.clone"), e.Op)
	assert.Equal(t, types.RepoName("atmospec"), e.Repo)
	assert.Equal(t, Git, e.Kind)
	assert.Contains(t, err.Error(), "obsenv.clone")
	assert.Contains(t, err.Error(), "repo atmospec")
	assert.Contains(t, err.Error(), "exit status 128")
}

func TestEDedupsFieldsOfWrappedError(t *testing.T) {
	inner := E(Op("vcs.checkoutBranch"), Git, types.RepoName("atmospec"),
		fmt.Errorf("exit status 1"))
	outer := E(Op("obsenv.checkoutBranch"), types.RepoName("atmospec"), inner)

	// the repository name is lifted to the outer error, not repeated
	var e *Error
	require.True(t, As(outer, &e))
	assert.Equal(t, types.RepoName("atmospec"), e.Repo)

	wrapped, ok := e.Err.(*Error)
	require.True(t, ok)
	assert.Equal(t, types.RepoName(""), wrapped.Repo)
	assert.Equal(t, Op("vcs.checkoutBranch"), wrapped.Op)

	// the original error is untouched by the dedup
	var i *Error
	require.True(t, As(inner, &i))
	assert.Equal(t, types.RepoName("atmospec"), i.Repo)
}

func TestIsKindWalksChain(t *testing.T) {
	inner := E(Op("vcs.clone"), Exist, types.UniquePath("/obs-env/atmospec"),
		fmt.Errorf("destination exists"))
	outer := E(Op("obsenv.cloneRepositories"), types.RepoName("atmospec"), inner)

	assert.True(t, IsKind(outer, Exist))
	assert.False(t, IsKind(outer, Resolver))
	assert.False(t, IsKind(nil, Exist))
	assert.False(t, IsKind(fmt.Errorf("plain"), Exist))
}

func TestErrorStringOmitsEmptyFields(t *testing.T) {
	err := E(MissingParam, "checkout branch action requires a repository, none given")
	assert.Equal(t,
		"missing parameter value: checkout branch action requires a repository, none given",
		err.Error())
}

func TestZero(t *testing.T) {
	assert.True(t, (&Error{}).Zero())
	assert.False(t, (&Error{Op: "obsenv.reset"}).Zero())
}
