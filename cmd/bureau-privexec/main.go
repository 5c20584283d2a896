// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-privexec drops privileges, sanitizes the environment and execs
// a target program.
//
// Usage:
//
//	bureau-privexec exec [flags] [-- <command> [args...]]
//	bureau-privexec tokenize [flags] <command> [args]
//	bureau-privexec rand [flags]
//	bureau-privexec inspect [flags] <record>
//	bureau-privexec version
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/privexec/lib/clock"
	"github.com/bureau-foundation/privexec/lib/launch"
	"github.com/bureau-foundation/privexec/lib/passwd"
	"github.com/bureau-foundation/privexec/lib/privilege"
	"github.com/bureau-foundation/privexec/lib/process"
	"github.com/bureau-foundation/privexec/lib/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("bureau-privexec")
		return
	}
	process.Terminate(newApp().run(os.Args[1:]))
}

// app holds everything a command touches outside its own memory, so
// tests can run the full pipeline against fakes.
type app struct {
	stdout io.Writer
	stderr io.Writer

	resolver    passwd.Resolver
	calls       privilege.Calls
	environment launch.Environment
	chdir       func(dir string) error
	execer      launch.Execer
	environ     func() []string

	// entropy overrides the system entropy source for the rand command.
	entropy io.Reader

	clock clock.Clock
	pid   func() int
}

func newApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		resolver:    passwd.System{},
		calls:       privilege.SystemCalls(),
		environment: launch.ProcessEnvironment{},
		chdir:       os.Chdir,
		execer:      launch.SystemExecer{},
		environ:     os.Environ,
		clock:       clock.Real(),
		pid:         os.Getpid,
	}
}

func (a *app) run(args []string) error {
	if len(args) < 1 {
		a.printUsage()
		return process.Exit(2)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "exec":
		return a.execCmd(rest)
	case "tokenize":
		return a.tokenizeCmd(rest)
	case "rand":
		return a.randCmd(rest)
	case "inspect":
		return a.inspectCmd(rest)
	case "version", "-v":
		return a.versionCmd()
	case "help", "--help", "-h":
		a.printUsage()
		return nil
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n\n", command)
		a.printUsage()
		return process.Exit(2)
	}
}

func (a *app) versionCmd() error {
	fmt.Fprintf(a.stdout, "bureau-privexec %s\n", version.Full())
	digest, path, err := version.SelfDigest()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "  Binary: %s (%s)\n", path, digest)
	return nil
}

func (a *app) printUsage() {
	fmt.Fprint(a.stderr, `bureau-privexec - Drop privileges, sanitize the environment and exec

USAGE
    bureau-privexec <command> [flags] [-- <args>...]

COMMANDS
    exec          Confine, drop privileges and exec a command
    tokenize      Show the argument vector a command line produces
    rand          Print draws from a seeded generator
    inspect       Show a launch record
    version       Show version and binary digest

EXAMPLES
    # Run printenv as uid 1000 with a clean environment
    bureau-privexec exec --uid=1000 -- /usr/bin/env 'FOO=1 printenv'

    # See what would run without changing anything
    bureau-privexec exec --config=/etc/privexec.yaml --dry-run

    # Check how an argument string splits
    bureau-privexec tokenize /bin/echo "say 'hello world'"

ENVIRONMENT
    BUREAU_PRIVEXEC_CONFIG  Path to the YAML config file
    BUREAU_DEBUG            Enable debug logging

For more information, see: https://github.com/bureau-foundation/privexec
`)
}
