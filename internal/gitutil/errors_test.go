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

package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineErrorType(t *testing.T) {
	testCases := map[string]struct {
		stderr       string
		expectedType GitExecErrorType
	}{
		"unknown revision": {
			stderr:       "fatal: ambiguous argument 'v9': unknown revision or path not in the working tree.",
			expectedType: UnknownReference,
		},
		"pathspec did not match": {
			stderr:       "error: pathspec 'nope' did not match any file(s) known to git",
			expectedType: UnknownReference,
		},
		"remote branch not found": {
			stderr:       "fatal: Remote branch nope not found in upstream origin",
			expectedType: UnknownReference,
		},
		"dirty working tree": {
			stderr:       "error: Your local changes to the following files would be overwritten by checkout:",
			expectedType: WorkingTreeDirty,
		},
		"auth required": {
			stderr:       "fatal: could not read Username for 'https://github.com': terminal prompts disabled",
			expectedType: HTTPSAuthRequired,
		},
		"host unavailable": {
			stderr:       "fatal: unable to access 'https://github.com/x/y.git/': Could not resolve host: github.com",
			expectedType: RepositoryUnavailable,
		},
		"repository not found": {
			stderr:       "fatal: repository 'https://github.com/x/y.git/' not found",
			expectedType: RepositoryNotFound,
		},
		"not a repository": {
			stderr:       "fatal: 'foo' does not appear to be a git repository",
			expectedType: RepositoryNotFound,
		},
		"destination exists": {
			stderr:       "fatal: destination path 'atmospec' already exists and is not an empty directory.",
			expectedType: DestinationExists,
		},
		"unclassified": {
			stderr:       "fatal: something completely different",
			expectedType: Unknown,
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expectedType, determineErrorType(tc.stderr))
		})
	}
}
