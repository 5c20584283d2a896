// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package entropy

import "time"

// platformGetrandom is nil off Linux; the device tier is tried first.
var platformGetrandom func(buf []byte) (int, error)

func platformTimestamp() (int64, int64, error) {
	now := time.Now()
	return now.Unix(), int64(now.Nanosecond()), nil
}
