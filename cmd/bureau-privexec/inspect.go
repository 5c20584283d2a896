// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/privexec/lib/argv"
	"github.com/bureau-foundation/privexec/lib/binhash"
	"github.com/bureau-foundation/privexec/lib/process"
	"github.com/bureau-foundation/privexec/lib/record"
)

func (a *app) inspectCmd(args []string) error {
	flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	raw := flagSet.Bool("raw", false, "print CBOR diagnostic notation instead of fields")
	verify := flagSet.Bool("verify", false, "check the recorded binary digest against the file on disk")
	root := flagSet.String("root", "", "directory the command path is relative to (the launch chroot)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("usage: bureau-privexec inspect [--raw] [--verify] <record>")
	}
	path := flagSet.Arg(0)

	if *raw {
		text, err := record.Diagnose(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, text)
		return nil
	}

	entry, err := record.Read(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "time:    %s\n", entry.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(a.stdout, "pid:     %d\n", entry.PID)
	fmt.Fprintf(a.stdout, "user:    %s (uid %d, gid %d)\n", entry.User, entry.UID, entry.GID)
	fmt.Fprintf(a.stdout, "command: %s\n", entry.Command)
	fmt.Fprintf(a.stdout, "argv:    %s\n", argv.Join(entry.Argv))
	if entry.ArgumentsDropped {
		fmt.Fprintln(a.stdout, "warning: arguments were dropped")
	}
	fmt.Fprintf(a.stdout, "cwd:     %s\n", entry.WorkingDirectory)
	fmt.Fprintf(a.stdout, "env:     %s\n", strings.Join(entry.EnvironmentKeys, " "))
	digest := entry.BinaryDigest
	if digest == "" {
		digest = "(not recorded)"
	}
	fmt.Fprintf(a.stdout, "digest:  %s\n", digest)

	if !*verify {
		return nil
	}
	if entry.BinaryDigest == "" {
		return fmt.Errorf("record has no binary digest to verify")
	}
	recorded, err := binhash.ParseDigest(entry.BinaryDigest)
	if err != nil {
		return fmt.Errorf("record digest: %w", err)
	}
	current, err := binhash.HashFile(filepath.Join(*root, entry.Command))
	if err != nil {
		return err
	}
	if current != recorded {
		fmt.Fprintf(a.stdout, "verify:  MISMATCH (now %s)\n", current)
		return process.Exit(1)
	}
	fmt.Fprintln(a.stdout, "verify:  ok")
	return nil
}
