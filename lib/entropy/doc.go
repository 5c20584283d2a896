// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package entropy fills buffers with unpredictable bytes for seeding
// the non-cryptographic generators in lib/prng.
//
// A [Source] tries three tiers in order and stops at the first that
// fills the whole buffer:
//
//  1. getrandom(2) on Linux. EINTR is retried. ENOSYS (a kernel without
//     the syscall) skips to the next tier; any other error is fatal,
//     because a system that has getrandom but cannot serve it is
//     misconfigured.
//  2. The random device, /dev/urandom by default. Failing to open or
//     fully read it logs a warning and moves on.
//  3. Clock jitter. Each output byte is XOR-folded with every byte of
//     the seconds and nanoseconds fields of a CLOCK_REALTIME reading,
//     with a 1ns sleep between readings. This is predictable and logs
//     a warning saying so. Failing to read the clock is fatal since no
//     source remains.
//
// Fatal conditions are returned as *process.FatalError. Nothing in this
// package is suitable for keys or tokens; use crypto/rand for those.
package entropy
