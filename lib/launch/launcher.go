// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"errors"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/privexec/lib/argv"
	"github.com/bureau-foundation/privexec/lib/process"
)

// errExecReturned is reported when an Execer returns nil, which a real
// execve cannot do.
var errExecReturned = errors.New("exec returned without replacing the process image")

// Execer replaces the current process image.
type Execer interface {
	Exec(path string, argv []string, envv []string) error
}

// SystemExecer calls execve(2).
type SystemExecer struct{}

// Exec implements Execer. It only returns on failure.
func (SystemExecer) Exec(path string, argv []string, envv []string) error {
	return unix.Exec(path, argv, envv)
}

// Launcher builds an argument vector and execs the target.
type Launcher struct {
	Tokenizer argv.Tokenizer
	Execer    Execer

	// Environ supplies the environment passed to the new image. Nil
	// means os.Environ, which after Sanitize holds exactly the
	// sanctioned variables.
	Environ func() []string

	Logger *slog.Logger
}

// NewLauncher returns a Launcher that really execs.
func NewLauncher(logger *slog.Logger) *Launcher {
	return &Launcher{
		Execer: SystemExecer{},
		Logger: logger,
	}
}

// Run execs command with args on a default Launcher and never
// returns: either the image is replaced or the process terminates.
func Run(command, args string) {
	process.Terminate(NewLauncher(nil).Execute(command, args))
}

// Prepare tokenizes args into a vector for command. Dropped arguments
// are logged, not reported as an error.
func (l *Launcher) Prepare(command, args string) (*argv.Vector, error) {
	vector, err := l.Tokenizer.Tokenize(command, args)
	if err != nil {
		return nil, err
	}
	if vector.Dropped() {
		l.logger().Debug("argument vector full; dropping remaining arguments",
			"command", command,
			"kept", vector.Len(),
			"slots", vector.Cap(),
		)
	}
	return vector, nil
}

// Execute replaces the process with command. An empty command is a
// successful no-op and yields process.Exit(0) without calling exec.
//
// Execute never returns nil. On success control does not come back at
// all; every returned value is meant for process.Terminate.
func (l *Launcher) Execute(command, args string) error {
	if command == "" {
		return process.Exit(0)
	}
	vector, err := l.Prepare(command, args)
	if err != nil {
		return err
	}
	return l.ExecVector(command, vector)
}

// ExecVector execs command with a vector built by Prepare. Like
// Execute, it returns only on failure.
func (l *Launcher) ExecVector(command string, vector *argv.Vector) error {
	op := "execv(" + command + ")"

	// Rejects anything execve would truncate before the exec attempt.
	if _, err := vector.Pointers(); err != nil {
		return process.Fatalf(op, "invalid argument vector: %w", err)
	}

	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}

	execer := l.Execer
	if execer == nil {
		execer = SystemExecer{}
	}

	err := execer.Exec(command, vector.Args(), environ())
	if err == nil {
		err = errExecReturned
	}
	l.logger().Error("exec failed", "command", command, "error", err)
	return process.Fatalf(op, "failed: %w", err)
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
