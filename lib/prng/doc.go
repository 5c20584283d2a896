// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package prng provides two small, fast, non-cryptographic generators
// for jitter, backoff and load spreading.
//
// [Tausworthe] is L'Ecuyer's maximally equidistributed combined
// Tausworthe generator (Mathematics of Computation 65, 1996) with 32-bit
// output and 128 bits of state. Its single 32-bit seed is spread over
// the four state words with one step of four common rand() LCGs, each
// OR-masked so the word has the low bits the recurrence requires.
//
// [Xorshift64Star] is Vigna's xorshift64* with 64-bit state and output.
// A zero state is a fixed point; seeding never produces one.
//
// Both types are plain values owned by the caller. There is no package
// level generator and no locking: give each goroutine its own instance.
// Both implement math/rand/v2.Source, so rand.New(gen) provides the
// usual helpers.
//
// Do not use either generator for keys, tokens, nonces or anything an
// attacker benefits from predicting.
package prng
