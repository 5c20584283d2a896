// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for privexec packages.
//
// [RequireReceive] and [RequireClosed] wrap the timeout safety valve
// (select with a time.After fallback) used when a test drives a
// goroutine blocked on a fake clock: a bug that leaves the goroutine
// asleep fails the test instead of hanging it. They are the only
// place in the test suite that waits on real wall-clock time.
//
// Helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
