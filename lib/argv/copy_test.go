// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argv

import (
	"testing"

	"github.com/bureau-foundation/privexec/lib/process"
)

func TestCopyArg(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		limit   int
		wantErr bool
	}{
		{"fits", "abc", 4, false},
		{"empty", "", 1, false},
		{"exactly limit", "abcd", 4, true},
		{"no room", "a", 0, true},
		{"embedded NUL", "a\x00b", 16, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := CopyArg("command", test.src, test.limit)
			if test.wantErr {
				if err == nil {
					t.Fatalf("CopyArg(%q, %d) succeeded, want error", test.src, test.limit)
				}
				if !process.IsFatal(err) {
					t.Errorf("error %v is not fatal", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CopyArg: %v", err)
			}
			if got != test.src {
				t.Errorf("CopyArg = %q, want %q", got, test.src)
			}
		})
	}
}
