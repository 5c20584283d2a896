// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called.
//
// FakeClock is safe for concurrent use by multiple goroutines.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.sleepersChanged = sync.NewCond(&clock.mu)
	return clock
}

// FakeClock is a deterministic Clock for testing.
type FakeClock struct {
	mu              sync.Mutex
	current         time.Time
	sleepers        []*sleeper
	sleepersChanged *sync.Cond
}

// sleeper is one goroutine blocked in Sleep.
type sleeper struct {
	deadline time.Time
	wake     chan struct{}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Sleep blocks until the clock is advanced to or past now+d. If
// d <= 0, it returns immediately.
func (c *FakeClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	waiter := &sleeper{deadline: c.current.Add(d), wake: make(chan struct{})}
	c.sleepers = append(c.sleepers, waiter)
	c.sleepersChanged.Broadcast()
	c.mu.Unlock()

	<-waiter.wake
}

// Advance moves the clock forward by d and wakes every sleeper whose
// deadline has been reached.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(d)
	remaining := c.sleepers[:0]
	for _, waiter := range c.sleepers {
		if waiter.deadline.After(c.current) {
			remaining = append(remaining, waiter)
			continue
		}
		close(waiter.wake)
	}
	c.sleepers = remaining
	c.sleepersChanged.Broadcast()
}

// WaitForSleepers blocks until at least n goroutines are sleeping.
func (c *FakeClock) WaitForSleepers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.sleepers) < n {
		c.sleepersChanged.Wait()
	}
}

// Sleeping returns the number of goroutines currently blocked in Sleep.
func (c *FakeClock) Sleeping() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sleepers)
}
