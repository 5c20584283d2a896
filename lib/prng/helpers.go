// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prng

import (
	"math/bits"
	"math/rand/v2"
	"time"
)

// Float64 returns a uniform float in [0, 1) built from the top 53 bits
// of one draw.
func Float64(source rand.Source) float64 {
	return float64(source.Uint64()>>11) / (1 << 53)
}

// Intn returns a uniform int in [0, n) using Lemire's multiply-shift
// with rejection, so there is no modulo bias. Panics if n <= 0.
func Intn(source rand.Source, n int) int {
	if n <= 0 {
		panic("prng: Intn called with non-positive n")
	}
	bound := uint64(n)
	high, low := bits.Mul64(source.Uint64(), bound)
	if low < bound {
		threshold := -bound % bound
		for low < threshold {
			high, low = bits.Mul64(source.Uint64(), bound)
		}
	}
	return int(high)
}

// Jitter returns base scaled by a uniform factor in
// [1-fraction, 1+fraction). fraction is clamped to [0, 1]. A
// non-positive base is returned unchanged.
func Jitter(source rand.Source, base time.Duration, fraction float64) time.Duration {
	if base <= 0 || fraction <= 0 {
		return base
	}
	if fraction > 1 {
		fraction = 1
	}
	factor := 1 - fraction + 2*fraction*Float64(source)
	return time.Duration(float64(base) * factor)
}
