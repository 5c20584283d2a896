// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package privilege confines and de-privileges the current process
// before it execs an untrusted program.
//
// The order matters and is the caller's responsibility: [Dropper.Chroot]
// first (it needs root), then [Dropper.SetUIDGID], then the environment
// sanitizer, then exec. Every failure is a *process.FatalError: a
// process left half-confined must not continue.
//
// Credential changes go through the standard library's syscall package,
// whose Setresuid, Setresgid and Setgroups apply to every OS thread of
// the Go runtime. The golang.org/x/sys/unix equivalents change only the
// calling thread, which would leave other runtime threads privileged.
package privilege
