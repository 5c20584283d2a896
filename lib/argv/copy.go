// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argv

import (
	"strings"

	"github.com/bureau-foundation/privexec/lib/process"
)

// CopyArg validates that src fits a destination of limit bytes
// including a terminating NUL, and returns a copy. name identifies the
// argument in the error. Values that would be truncated are rejected
// rather than shortened.
func CopyArg(name, src string, limit int) (string, error) {
	if limit <= 0 {
		return "", process.Fatalf("CopyArg", "%s: destination has no room", name)
	}
	if strings.IndexByte(src, 0) >= 0 {
		return "", process.Fatalf("CopyArg", "%s contains a NUL byte", name)
	}
	if len(src) >= limit {
		return "", process.Fatalf("CopyArg", "%s would truncate; it is %d bytes, limit %d", name, len(src), limit-1)
	}
	return strings.Clone(src), nil
}
