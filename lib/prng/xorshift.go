// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prng

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/privexec/lib/entropy"
)

// xorshiftMultiplier is the xorshift64* output scrambler.
const xorshiftMultiplier = 2685821657736338717

// Xorshift64Star is the state of an xorshift64* generator.
type Xorshift64Star struct {
	S1 uint64
}

// NewXorshift64Star returns a generator seeded with eight bytes read
// from source. An all-zero read is replaced by a fixed non-zero word,
// since zero is a fixed point of the recurrence.
func NewXorshift64Star(source io.Reader) (*Xorshift64Star, error) {
	seed, err := entropy.ReadUint64(source)
	if err != nil {
		return nil, fmt.Errorf("seeding xorshift64* generator: %w", err)
	}
	generator := &Xorshift64Star{}
	generator.Seed(seed)
	return generator, nil
}

// Seed sets the state directly. Zero becomes the multiplier constant.
func (g *Xorshift64Star) Seed(seed uint64) {
	if seed == 0 {
		seed = xorshiftMultiplier
	}
	g.S1 = seed
}

// Next advances the state and returns 64 bits.
func (g *Xorshift64Star) Next() uint64 {
	g.S1 ^= g.S1 >> 12
	g.S1 ^= g.S1 << 25
	g.S1 ^= g.S1 >> 27
	return g.S1 * xorshiftMultiplier
}

// Uint64 implements math/rand/v2.Source.
func (g *Xorshift64Star) Uint64() uint64 { return g.Next() }
