// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package launch prepares a process to run as a target account and
// then replaces it with the target program.
//
// [Sanitizer] wipes the inherited environment and rebuilds it from the
// account database with exactly eight variables: UID, USER, USERNAME,
// LOGNAME, HOME, PWD, SHELL and PATH, where PATH is always
// [DefaultPath]. It then moves the working directory to the account's
// home or to the filesystem root. Every step is all-or-nothing: the
// first failure is returned as a *process.FatalError and the caller is
// expected to terminate rather than continue with a partially
// sanitized environment.
//
// [Launcher] tokenizes an argument string with lib/argv and calls
// execve. A successful exec never returns. Every value Execute does
// return is terminal: process.Exit(0) for a launch with no command, a
// *process.FatalError for everything else. [Run] hands that value to
// process.Terminate, so it never returns at all.
//
// The process-global operations (environment, chdir, exec, account
// lookup) are fields on the structs so tests can substitute fakes.
// Nothing here is safe for concurrent use; the launcher is the last
// code a process runs.
package launch
