// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package argv turns a command path and a single free-form argument
// string into a bounded, exec-ready argument vector.
//
// The argument string comes from configuration or from a caller that
// may not be trusted, so the rules are deliberately small:
//
//   - An unquoted space separates arguments. Runs of spaces collapse and
//     leading or trailing spaces produce nothing.
//   - A single quote toggles single-quote state only while no double
//     quote is open, and vice versa. Inside one quote type the other is
//     literal, so `'say "hi"'` is the single argument `say "hi"`. Quote
//     characters that toggle state are removed; literal ones are kept.
//   - A quoted empty string such as '' is a non-empty span and produces
//     an empty argument.
//   - The end of the string closes the current argument even inside an
//     open quote. An unterminated quote is not an error.
//
// There are no escapes, no variable expansion, no globbing and no
// redirection.
//
// A [Vector] holds at most [MaxArgs] slots including the trailing NUL
// sentinel that execve requires. Arguments beyond capacity are dropped
// without error; [Vector.Dropped] reports that it happened so callers
// can log it. [Vector.Pointers] produces the NUL-terminated pointer
// array at any point during construction.
//
// Violations that would silently change what gets executed (an
// argument containing a NUL byte, which a C string would truncate, or
// one too long to represent) are returned as *process.FatalError.
package argv
