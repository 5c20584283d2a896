// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prng

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/rand/v2"
	"testing"
	"time"
)

func TestTauswortheSeed(t *testing.T) {
	tests := []struct {
		seed uint32
		want Tausworthe
	}{
		{0, Tausworthe{0x3c6ef35f, 0x3039, 0x369ec3, 0x7fffffc3}},
		{1, Tausworthe{0x3c88596c, 0x41c67ea6, 0x39e2c0, 0xffffffb0}},
		{0xdeadbeef, Tausworthe{0x6aabdf82, 0x1c014dfc, 0xc7b1ddf6, 0x791ad406}},
	}
	for _, test := range tests {
		var generator Tausworthe
		generator.Seed(test.seed)
		if generator != test.want {
			t.Errorf("Seed(%#x) = %#x, want %#x", test.seed, generator, test.want)
		}
	}
}

func TestTauswortheSequence(t *testing.T) {
	tests := []struct {
		seed uint32
		want []uint32
	}{
		{0, []uint32{0x29cfaf8b, 0x80606b62, 0x4aa3e485, 0x00072d4e}},
		{1, []uint32{0x81a89ccc, 0x7a4f1ec9, 0x20b7459c, 0x42875f58}},
		{0xdeadbeef, []uint32{0x8c68e4dd, 0x14abfdb0, 0x5e0ca2fe, 0xd5ace805}},
	}
	for _, test := range tests {
		var generator Tausworthe
		generator.Seed(test.seed)
		for i, want := range test.want {
			if got := generator.Next(); got != want {
				t.Errorf("seed %#x draw %d = %#x, want %#x", test.seed, i, got, want)
			}
		}
	}
}

func TestTauswortheSeedBits(t *testing.T) {
	for _, seed := range []uint32{0, 1, 0x7fffffff, 0x80000000, 0xffffffff, 12345} {
		var generator Tausworthe
		generator.Seed(seed)
		if generator.Degenerate() {
			t.Errorf("Seed(%#x) produced degenerate state %#x", seed, generator)
		}
	}
}

func TestTauswortheDegenerateSeed(t *testing.T) {
	// 0x25d60fe5*1664525 + 1013904223 wraps to exactly zero.
	const degenerate = 0x25d60fe5

	var generator Tausworthe
	generator.Seed(degenerate)
	if generator.S1 != 0 || !generator.Degenerate() {
		t.Fatalf("Seed(%#x) = %#x, want S1 == 0 and Degenerate", degenerate, generator)
	}
	for range 5 {
		generator.Next()
	}
	if generator.S1 != 0 {
		t.Errorf("S1 = %#x after draws, want it stuck at 0", generator.S1)
	}

	// NewTausworthe discards the degenerate seed and reads the next one.
	var seeds []byte
	seeds = binary.NativeEndian.AppendUint32(seeds, degenerate)
	seeds = binary.NativeEndian.AppendUint32(seeds, 1)
	reseeded, err := NewTausworthe(bytes.NewReader(seeds))
	if err != nil {
		t.Fatalf("NewTausworthe: %v", err)
	}
	if reseeded.Degenerate() {
		t.Fatalf("NewTausworthe returned degenerate state %#x", *reseeded)
	}
	if got := reseeded.Next(); got != 0x81a89ccc {
		t.Errorf("first draw after reseed = %#x, want 0x81a89ccc (seed 1)", got)
	}
}

func TestTauswortheDegenerateSource(t *testing.T) {
	var seeds []byte
	for range maxSeedAttempts {
		seeds = binary.NativeEndian.AppendUint32(seeds, 0x25d60fe5)
	}
	_, err := NewTausworthe(bytes.NewReader(seeds))
	if !errors.Is(err, ErrDegenerateSeed) {
		t.Errorf("NewTausworthe error = %v, want ErrDegenerateSeed", err)
	}
}

func TestTauswortheUint64(t *testing.T) {
	var generator Tausworthe
	generator.Seed(1)
	if got, want := generator.Uint64(), uint64(0x81a89ccc7a4f1ec9); got != want {
		t.Errorf("Uint64() = %#x, want %#x", got, want)
	}
}

func TestXorshift64StarSequence(t *testing.T) {
	tests := []struct {
		seed uint64
		want []uint64
	}{
		{1, []uint64{0x47e4ce4b896cdd1d, 0xabcfa6a8e079651d, 0xb9d10d8feb731f57, 0x4db418a0bb1b019d}},
		{0x0123456789abcdef, []uint64{0x7c9482472cb6708c, 0xd5705692bf1f28de, 0x88b71e3ba5e005c0, 0x5e5d8a88f0c0cbe6}},
	}
	for _, test := range tests {
		generator := Xorshift64Star{S1: test.seed}
		for i, want := range test.want {
			if got := generator.Next(); got != want {
				t.Errorf("seed %#x draw %d = %#x, want %#x", test.seed, i, got, want)
			}
		}
	}
}

func TestXorshift64StarZeroSeed(t *testing.T) {
	var generator Xorshift64Star
	generator.Seed(0)
	if generator.S1 == 0 {
		t.Fatal("Seed(0) left the state at the zero fixed point")
	}
	if generator.Next() == 0 {
		t.Error("first draw after Seed(0) is zero")
	}
}

func TestNewFromReader(t *testing.T) {
	tausworthe, err := NewTausworthe(bytes.NewReader(binary.NativeEndian.AppendUint32(nil, 1)))
	if err != nil {
		t.Fatalf("NewTausworthe: %v", err)
	}
	if got := tausworthe.Next(); got != 0x81a89ccc {
		t.Errorf("NewTausworthe first draw = %#x, want 0x81a89ccc", got)
	}

	xorshift, err := NewXorshift64Star(bytes.NewReader(binary.NativeEndian.AppendUint64(nil, 1)))
	if err != nil {
		t.Fatalf("NewXorshift64Star: %v", err)
	}
	if got := xorshift.Next(); got != 0x47e4ce4b896cdd1d {
		t.Errorf("NewXorshift64Star first draw = %#x, want 0x47e4ce4b896cdd1d", got)
	}
}

func TestNewShortRead(t *testing.T) {
	if _, err := NewTausworthe(bytes.NewReader([]byte{1, 2})); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("NewTausworthe short read error = %v, want ErrUnexpectedEOF", err)
	}
	if _, err := NewXorshift64Star(bytes.NewReader(nil)); !errors.Is(err, io.EOF) {
		t.Errorf("NewXorshift64Star empty read error = %v, want EOF", err)
	}
}

func TestDistinctSeedsDiverge(t *testing.T) {
	var a, b Tausworthe
	a.Seed(100)
	b.Seed(101)
	same := 0
	for range 64 {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same > 1 {
		t.Errorf("adjacent seeds agreed on %d of 64 draws", same)
	}
}

func TestSource(t *testing.T) {
	// Both generators plug into math/rand/v2.
	sources := map[string]rand.Source{
		"tausworthe": &Tausworthe{0x3c88596c, 0x41c67ea6, 0x39e2c0, 0xffffffb0},
		"xorshift":   &Xorshift64Star{S1: 1},
	}
	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			random := rand.New(source)
			for range 1000 {
				if value := random.IntN(10); value < 0 || value >= 10 {
					t.Fatalf("IntN(10) = %d", value)
				}
			}
		})
	}
}

func TestIntn(t *testing.T) {
	generator := &Xorshift64Star{S1: 42}
	var counts [7]int
	for range 7000 {
		counts[Intn(generator, 7)]++
	}
	for value, count := range counts {
		if count < 800 || count > 1200 {
			t.Errorf("Intn(7) produced %d %d times out of 7000", value, count)
		}
	}
	if got := Intn(generator, 1); got != 0 {
		t.Errorf("Intn(1) = %d", got)
	}
}

func TestIntnPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Intn(0) did not panic")
		}
	}()
	Intn(&Xorshift64Star{S1: 1}, 0)
}

func TestFloat64Range(t *testing.T) {
	generator := &Tausworthe{}
	generator.Seed(7)
	for range 10000 {
		if value := Float64(generator); value < 0 || value >= 1 {
			t.Fatalf("Float64() = %v", value)
		}
	}
}

func TestJitter(t *testing.T) {
	generator := &Xorshift64Star{S1: 9}
	base := time.Second
	for range 1000 {
		got := Jitter(generator, base, 0.25)
		if got < 750*time.Millisecond || got > 1250*time.Millisecond {
			t.Fatalf("Jitter(1s, 0.25) = %v", got)
		}
	}

	tests := []struct {
		name     string
		base     time.Duration
		fraction float64
		want     time.Duration
	}{
		{"zero fraction", time.Second, 0, time.Second},
		{"negative fraction", time.Second, -1, time.Second},
		{"zero base", 0, 0.5, 0},
		{"negative base", -time.Second, 0.5, -time.Second},
	}
	for _, test := range tests {
		if got := Jitter(generator, test.base, test.fraction); got != test.want {
			t.Errorf("%s: Jitter = %v, want %v", test.name, got, test.want)
		}
	}

	for range 1000 {
		if got := Jitter(generator, base, 5); got < 0 || got > 2*base {
			t.Fatalf("Jitter with clamped fraction = %v", got)
		}
	}
}
