// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argv

import (
	"math"
	"strings"

	"github.com/bureau-foundation/privexec/lib/process"
)

// maxArgLength bounds a single argument. It matches the largest length
// a C int precision specifier can express.
const maxArgLength = math.MaxInt32

// Tokenizer splits argument strings into vectors of a fixed capacity.
type Tokenizer struct {
	// Slots is the vector capacity including the sentinel. Zero means
	// MaxArgs.
	Slots int
}

// Tokenize builds a vector for command and args using MaxArgs slots.
func Tokenize(command, args string) (*Vector, error) {
	return Tokenizer{}.Tokenize(command, args)
}

// Tokenize builds a vector whose argv[0] is the basename of command
// and whose remaining elements are the arguments parsed from args.
//
// Parsing stops once the vector is full. Arguments past that point are
// dropped and reported by Vector.Dropped rather than as an error.
func (t Tokenizer) Tokenize(command, args string) (*Vector, error) {
	slots := t.Slots
	if slots == 0 {
		slots = MaxArgs
	}
	vector := NewVector(slots)

	base := Basename(command)
	name, err := copyArgument(0, len(base), base)
	if err != nil {
		return nil, err
	}
	vector.Append(name)

	var singleQuoted, doubleQuoted bool
	var token strings.Builder
	start := 0
	for position := 0; ; position++ {
		atEnd := position == len(args)
		if !atEnd {
			switch character := args[position]; character {
			case ' ':
				if !singleQuoted && !doubleQuoted {
					break // separator
				}
				token.WriteByte(character)
				continue
			case '\'':
				if doubleQuoted {
					token.WriteByte(character)
				} else {
					singleQuoted = !singleQuoted
				}
				continue
			case '"':
				if singleQuoted {
					token.WriteByte(character)
				} else {
					doubleQuoted = !doubleQuoted
				}
				continue
			default:
				token.WriteByte(character)
				continue
			}
		}

		if position > start {
			arg, err := copyArgument(vector.Len(), position-start, token.String())
			if err != nil {
				return nil, err
			}
			vector.Append(arg)
		}
		token.Reset()
		start = position + 1

		if atEnd {
			break
		}
		if vector.Full() {
			if strings.TrimLeft(args[start:], " ") != "" {
				vector.dropped = true
			}
			break
		}
	}
	return vector, nil
}

// Basename returns the text after the last slash in command, or
// command itself when it has no slash. Unlike path.Base it does not
// clean the path, so "/usr/bin/" yields "".
func Basename(command string) string {
	if index := strings.LastIndexByte(command, '/'); index >= 0 {
		return command[index+1:]
	}
	return command
}

// copyArgument returns an independently allocated copy of token,
// refusing anything execve would silently shorten. span is the length
// of the source text the token was read from, quotes included.
func copyArgument(index, span int, token string) (string, error) {
	if span > maxArgLength {
		return "", process.Fatalf("Tokenize", "argument n=%d length is too long", index)
	}
	if strings.IndexByte(token, 0) >= 0 {
		return "", process.Fatalf("Tokenize", "argument n=%d would truncate; not execing", index)
	}
	return strings.Clone(token), nil
}
