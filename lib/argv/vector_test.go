// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argv

import "testing"

func TestVectorAppend(t *testing.T) {
	vector := NewVector(3)
	if vector.Cap() != 3 {
		t.Fatalf("Cap() = %d, want 3", vector.Cap())
	}
	if !vector.Append("prog") || !vector.Append("one") {
		t.Fatal("Append refused an argument with free slots")
	}
	if !vector.Full() {
		t.Error("Full() = false with every non-sentinel slot used")
	}
	if vector.Append("two") {
		t.Error("Append accepted an argument into the sentinel slot")
	}
	if !vector.Dropped() {
		t.Error("Dropped() = false after a refused Append")
	}
	if vector.Len() != 2 {
		t.Errorf("Len() = %d, want 2", vector.Len())
	}
}

func TestVectorClamp(t *testing.T) {
	if got := NewVector(MaxArgs * 4).Cap(); got != MaxArgs {
		t.Errorf("NewVector(large).Cap() = %d, want %d", got, MaxArgs)
	}
	if got := NewVector(-1).Cap(); got != 2 {
		t.Errorf("NewVector(-1).Cap() = %d, want 2", got)
	}
}

func TestVectorPointers(t *testing.T) {
	vector := NewVector(4)
	pointers, err := vector.Pointers()
	if err != nil {
		t.Fatalf("Pointers on empty vector: %v", err)
	}
	if len(pointers) != 1 || pointers[0] != nil {
		t.Errorf("empty vector Pointers() = %v, want [nil]", pointers)
	}

	vector.Append("prog")
	vector.Append("a")
	pointers, err = vector.Pointers()
	if err != nil {
		t.Fatalf("Pointers: %v", err)
	}
	if len(pointers) != 3 || pointers[2] != nil {
		t.Fatalf("Pointers() has length %d, want 3 with nil last", len(pointers))
	}
	if *pointers[1] != 'a' {
		t.Errorf("Pointers()[1] points at %q, want 'a'", *pointers[1])
	}

	vector = NewVector(4)
	vector.Append("bad\x00")
	if _, err := vector.Pointers(); err == nil {
		t.Error("Pointers accepted an argument containing NUL")
	}
}
