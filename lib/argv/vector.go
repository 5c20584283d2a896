// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argv

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MaxArgs is the hard capacity of a Vector, counting the NUL sentinel.
// A full vector therefore holds MaxArgs-1 arguments.
const MaxArgs = 1024

// Vector is a capacity-checked argument list. Index 0 is the program
// name. The zero value is not usable; create one with NewVector.
type Vector struct {
	args    []string
	slots   int
	dropped bool
}

// NewVector returns an empty vector with the given number of slots,
// including the sentinel. Values outside [2, MaxArgs] are clamped: a
// vector always has room for argv[0] and the terminator, and never more
// than MaxArgs slots.
func NewVector(slots int) *Vector {
	if slots < 2 {
		slots = 2
	}
	if slots > MaxArgs {
		slots = MaxArgs
	}
	return &Vector{
		args:  make([]string, 0, slots-1),
		slots: slots,
	}
}

// Append adds arg if a non-sentinel slot is free. It reports whether
// arg was stored; a refused argument marks the vector as having
// dropped input.
func (v *Vector) Append(arg string) bool {
	if v.Full() {
		v.dropped = true
		return false
	}
	v.args = append(v.args, arg)
	return true
}

// Full reports whether every non-sentinel slot is in use.
func (v *Vector) Full() bool {
	return len(v.args) >= v.slots-1
}

// Len returns the number of arguments, excluding the sentinel.
func (v *Vector) Len() int { return len(v.args) }

// Cap returns the number of slots, including the sentinel.
func (v *Vector) Cap() int { return v.slots }

// Dropped reports whether input was discarded because the vector was
// full.
func (v *Vector) Dropped() bool { return v.dropped }

// Args returns a copy of the arguments.
func (v *Vector) Args() []string {
	out := make([]string, len(v.args))
	copy(out, v.args)
	return out
}

// Pointers returns the arguments as NUL-terminated C strings followed
// by a nil sentinel, the layout execve expects.
func (v *Vector) Pointers() ([]*byte, error) {
	pointers := make([]*byte, len(v.args)+1)
	for index, arg := range v.args {
		pointer, err := unix.BytePtrFromString(arg)
		if err != nil {
			return nil, fmt.Errorf("argument n=%d: %w", index, err)
		}
		pointers[index] = pointer
	}
	pointers[len(v.args)] = nil
	return pointers, nil
}
