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

package printer_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/tribeiro/ts-observing-environment/internal/printer"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]struct {
		input     string
		expected  Level
		expectErr bool
	}{
		"trace":      {input: "trace", expected: Trace},
		"debug":      {input: "debug", expected: Debug},
		"info":       {input: "info", expected: Info},
		"warn":       {input: "warn", expected: Warn},
		"error":      {input: "error", expected: Error},
		"mixed case": {input: "INFO", expected: Info},
		"unknown":    {input: "verbose", expectErr: true},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestLogfFiltersBelowLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	pr := New(&out, &errOut, Info)

	pr.Logf(Debug, "dropped\n")
	pr.Logf(Info, "kept\n")

	assert.Equal(t, "[info] kept\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestLogfWarningsGoToErrorStream(t *testing.T) {
	var out, errOut bytes.Buffer
	pr := New(&out, &errOut, Trace)

	pr.Logf(Warn, "careful\n")
	pr.Logf(Error, "broken\n")

	assert.Empty(t, out.String())
	assert.Equal(t, "[warn] careful\n[error] broken\n", errOut.String())
}

func TestSetLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	pr := New(&out, &errOut, Error)

	pr.Logf(Debug, "dropped\n")
	pr.SetLevel(Debug)
	pr.Logf(Debug, "kept\n")

	assert.Equal(t, "[debug] kept\n", out.String())
}

func TestPrintfIsNeverFiltered(t *testing.T) {
	var out, errOut bytes.Buffer
	pr := New(&out, &errOut, Error)

	pr.Printf("output %d\n", 42)
	assert.Equal(t, "output 42\n", out.String())
}

func TestFromContextOrDie(t *testing.T) {
	var out, errOut bytes.Buffer
	pr := New(&out, &errOut, Debug)

	ctx := WithContext(context.Background(), pr)
	assert.Equal(t, pr, FromContextOrDie(ctx))

	assert.Panics(t, func() {
		FromContextOrDie(context.Background())
	})
}
