// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FatalError reports a condition after which the process must not
// continue. Op names the failing operation (for example "FixEnvironment"
// or "execv(/bin/true)"); Err carries the underlying cause, usually a
// syscall error.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }

// ExitCode returns 1. Fatal errors always terminate with failure status.
func (e *FatalError) ExitCode() int { return 1 }

// Fatalf builds a FatalError for op. If args contains an error wrapped
// with %w it remains reachable through errors.Is and errors.As.
func Fatalf(op, format string, args ...any) *FatalError {
	return &FatalError{Op: op, Err: fmt.Errorf(format, args...)}
}

// IsFatal reports whether err is, or wraps, a FatalError.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// ExitError requests termination with a specific exit code. A zero
// code is a successful termination.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the requested exit code.
func (e *ExitError) ExitCode() int { return e.Code }

// Exit returns an ExitError for code.
func Exit(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps err to the exit code Terminate would use. nil maps to
// 0; errors implementing ExitCode() int use their own code; anything
// else maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// exit is replaced in tests.
var exit = os.Exit

// Terminate ends the process according to err and never returns. A
// nil error or a zero ExitError exits silently with status 0. Anything
// else prints one diagnostic line to stderr first.
func Terminate(err error) {
	terminate(os.Stderr, err)
	panic("unreachable")
}

func terminate(w io.Writer, err error) {
	code := ExitCode(err)
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	exit(code)
}
