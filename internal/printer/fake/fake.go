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

// Package fake provides printer implementations for tests.
package fake

import (
	"context"
	"os"

	"github.com/tribeiro/ts-observing-environment/internal/printer"
)

// NilPrinter implements the printer.Printer interface and just ignores
// all print calls.
type NilPrinter struct{}

func (np *NilPrinter) Printf(string, ...interface{}) {}

func (np *NilPrinter) Errorf(string, ...interface{}) {}

func (np *NilPrinter) Logf(printer.Level, string, ...interface{}) {}

func (np *NilPrinter) SetLevel(printer.Level) {}

// CtxWithNilPrinter returns a new context with the NilPrinter added.
func CtxWithNilPrinter() context.Context {
	return printer.WithContext(context.Background(), &NilPrinter{})
}

// CtxWithDefaultPrinter returns a new context with a stdout/stderr printer
// at trace verbosity added.
func CtxWithDefaultPrinter() context.Context {
	pr := printer.New(os.Stdout, os.Stderr, printer.Trace)
	return printer.WithContext(context.Background(), pr)
}
