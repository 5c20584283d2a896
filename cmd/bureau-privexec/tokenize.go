// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/privexec/lib/argv"
)

func (a *app) tokenizeCmd(args []string) error {
	flagSet := pflag.NewFlagSet("tokenize", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	slots := flagSet.Int("slots", argv.MaxArgs, "vector capacity including the terminating slot")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *slots < 2 || *slots > argv.MaxArgs {
		return fmt.Errorf("--slots must be between 2 and %d, got %d", argv.MaxArgs, *slots)
	}

	positional := flagSet.Args()
	if len(positional) < 1 || len(positional) > 2 {
		return fmt.Errorf("usage: bureau-privexec tokenize [--slots N] <command> [args]")
	}
	command, line := positional[0], ""
	if len(positional) == 2 {
		line = positional[1]
	}

	vector, err := argv.Tokenizer{Slots: *slots}.Tokenize(command, line)
	if err != nil {
		return err
	}
	for index, arg := range vector.Args() {
		fmt.Fprintf(a.stdout, "%d\t%s\n", index, argv.Quote(arg))
	}
	if vector.Dropped() {
		fmt.Fprintf(a.stderr, "warning: vector full after %d arguments; the rest were dropped\n", vector.Len())
	}
	return nil
}
