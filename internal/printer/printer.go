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

// Package printer defines utilities to display manage_obs_env CLI output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Level is the verbosity of a log line. Lines below the printer's
// configured level are dropped.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return "unknown"
}

// ParseLevel parses a --log-level flag value.
func ParseLevel(s string) (Level, error) {
	for _, l := range []Level{Trace, Debug, Info, Warn, Error} {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return Debug, fmt.Errorf("unknown log level %q, must be one of trace, debug, info, warn, error", s)
}

// Printer defines capabilities to display content in the manage_obs_env
// CLI. Abstracting the output away from the commands lets the CLI UX evolve
// independently and keeps command tests free of stdout capture.
type Printer interface {
	// Printf displays command output. It is never filtered.
	Printf(format string, args ...interface{})
	// Errorf displays an error line on the error stream.
	Errorf(format string, args ...interface{})
	// Logf displays a log line, subject to the configured level.
	Logf(level Level, format string, args ...interface{})
	// SetLevel changes the level below which Logf lines are dropped.
	SetLevel(level Level)
}

// New returns an instance of Printer.
func New(outStream, errStream io.Writer, level Level) Printer {
	if outStream == nil {
		outStream = os.Stdout
	}
	if errStream == nil {
		errStream = os.Stderr
	}
	return &printer{
		outStream: outStream,
		errStream: errStream,
		level:     level,
	}
}

// printer implements the default Printer used in the manage_obs_env
// codebase.
type printer struct {
	outStream io.Writer
	errStream io.Writer
	level     Level
}

func (pr *printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(pr.outStream, format, args...)
}

func (pr *printer) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(pr.errStream, format, args...)
}

func (pr *printer) Logf(level Level, format string, args ...interface{}) {
	if level < pr.level {
		return
	}
	o := pr.outStream
	if level >= Warn {
		o = pr.errStream
	}
	fmt.Fprintf(o, "[%s] ", level)
	fmt.Fprintf(o, format, args...)
}

func (pr *printer) SetLevel(level Level) {
	pr.level = level
}

// The key type is unexported to prevent collisions with context keys defined
// in other packages.
type contextKey int

// printerKey is the context key for the printer. Its value of zero is
// arbitrary. If this package defined other context keys, they would have
// different integer values.
const printerKey contextKey = 0

// FromContextOrDie returns the printer instance associated with the context.
func FromContextOrDie(ctx context.Context) Printer {
	pr, ok := ctx.Value(printerKey).(Printer)
	if ok {
		return pr
	}
	panic("printer missing in context")
}

// WithContext creates a new context from the given parent context by setting
// the printer instance.
func WithContext(ctx context.Context, pr Printer) context.Context {
	return context.WithValue(ctx, printerKey, pr)
}
