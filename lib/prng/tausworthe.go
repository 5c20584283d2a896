// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prng

import (
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/privexec/lib/entropy"
)

// maxSeedAttempts bounds how many seeds NewTausworthe reads before
// giving up on a source that keeps producing degenerate state.
const maxSeedAttempts = 8

// ErrDegenerateSeed is returned when every seed read from a source
// leaves a component without the bits its recurrence needs.
var ErrDegenerateSeed = errors.New("seed leaves a tausworthe component degenerate")

// Tausworthe is the state of a combined Tausworthe generator.
type Tausworthe struct {
	S1, S2, S3, S4 uint32
}

// NewTausworthe returns a generator seeded with a 32-bit word read
// from source. Seeds that leave a component degenerate are discarded
// and another word is read, up to maxSeedAttempts times.
func NewTausworthe(source io.Reader) (*Tausworthe, error) {
	generator := &Tausworthe{}
	for range maxSeedAttempts {
		seed, err := entropy.ReadUint32(source)
		if err != nil {
			return nil, fmt.Errorf("seeding tausworthe generator: %w", err)
		}
		generator.Seed(seed)
		if !generator.Degenerate() {
			return generator, nil
		}
	}
	return nil, fmt.Errorf("seeding tausworthe generator: %d attempts: %w", maxSeedAttempts, ErrDegenerateSeed)
}

// Seed expands seed into the four state words. Each component must
// exceed 1, 7, 15 and 127 respectively. The OR masks apply to the
// increments only, so a few seeds wrap a sum below its bound; check
// Degenerate after seeding directly.
func (g *Tausworthe) Seed(seed uint32) {
	g.S1 = seed*1664525 + (1013904223 | 0x10)
	g.S2 = seed*1103515245 + (12345 | 0x1000)
	g.S3 = seed*214013 + (2531011 | 0x100000)
	g.S4 = seed*2147483629 + (2147483587 | 0x10000000)
}

// Degenerate reports whether any component is too small for its
// recurrence. A degenerate component stays stuck for every later draw.
func (g *Tausworthe) Degenerate() bool {
	return g.S1 < 2 || g.S2 < 8 || g.S3 < 16 || g.S4 < 128
}

// Next advances the state and returns 32 bits.
func (g *Tausworthe) Next() uint32 {
	g.S1 = ((g.S1 & 0xfffffffe) << 18) ^ (((g.S1 << 6) ^ g.S1) >> 18)
	g.S2 = ((g.S2 & 0xfffffff8) << 2) ^ (((g.S2 << 2) ^ g.S2) >> 27)
	g.S3 = ((g.S3 & 0xfffffff0) << 7) ^ (((g.S3 << 13) ^ g.S3) >> 21)
	g.S4 = ((g.S4 & 0xffffff80) << 13) ^ (((g.S4 << 3) ^ g.S4) >> 12)
	return g.S1 ^ g.S2 ^ g.S3 ^ g.S4
}

// Uint64 combines two draws, high word first.
func (g *Tausworthe) Uint64() uint64 {
	high := uint64(g.Next())
	return high<<32 | uint64(g.Next())
}
