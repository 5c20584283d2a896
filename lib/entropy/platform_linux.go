// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entropy

import "golang.org/x/sys/unix"

func platformGetrandom(buf []byte) (int, error) {
	return unix.Getrandom(buf, 0)
}

func platformTimestamp() (int64, int64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return 0, 0, err
	}
	return int64(ts.Sec), int64(ts.Nsec), nil
}
