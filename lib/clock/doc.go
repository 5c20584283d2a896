// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Code that reads the wall clock or sleeps takes a [Clock] instead of
// calling time.Now or time.Sleep directly. In production, [Real]
// provides the standard library behavior. In tests, [Fake] provides a
// clock that stands still until [FakeClock.Advance] is called.
//
// # FakeClock Synchronization
//
// A goroutine calling Sleep on a FakeClock registers a pending sleeper
// and blocks. Use [FakeClock.WaitForSleepers] to block until the
// expected number of sleepers are registered before calling Advance:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go func() { c.Sleep(time.Millisecond); close(done) }()
//	c.WaitForSleepers(1)
//	c.Advance(time.Millisecond)
//
// This removes the race between registration and advancement that
// tests using real sleeps suffer from.
package clock
