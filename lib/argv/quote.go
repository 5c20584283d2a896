// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argv

import (
	"strings"
	"unicode"
)

// Quote returns s written so that Tokenize reads it back as exactly one
// argument equal to s. Strings without spaces, quotes or unprintable
// characters are returned as-is. Otherwise s is wrapped in whichever
// quote type it does not contain; a string holding both types is split
// at each single quote, and the pieces are joined by "'" segments.
//
// Tokenize has no escape syntax, so the only strings Quote cannot
// round-trip are those containing a NUL byte, which Tokenize rejects.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if isBare(s) {
		return s
	}
	switch {
	case !strings.ContainsRune(s, '\''):
		return "'" + s + "'"
	case !strings.ContainsRune(s, '"'):
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// Join quotes each argument and joins them with single spaces, giving
// an argument string that Tokenize splits back into args.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}

func isBare(s string) bool {
	for _, char := range s {
		switch {
		case char == ' ', char == '\'', char == '"':
			return false
		case !unicode.IsPrint(char):
			return false
		}
	}
	return true
}
