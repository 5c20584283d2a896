// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix && !linux

package privilege

import (
	"errors"
	"syscall"
)

var errUnsupported = errors.New("not supported on this platform")

// SystemCalls returns the real system calls where they exist. Credential
// changes fail: only Linux applies them to every thread.
func SystemCalls() Calls {
	return Calls{
		Chroot:     syscall.Chroot,
		Chdir:      syscall.Chdir,
		Setgroups:  func([]int) error { return errUnsupported },
		Setresgid:  func(int, int, int) error { return errUnsupported },
		Setresuid:  func(int, int, int) error { return errUnsupported },
		Getuid:     syscall.Getuid,
		Getgid:     syscall.Getgid,
		NoNewPrivs: func() error { return errUnsupported },
	}
}
