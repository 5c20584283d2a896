// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package privilege

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// SystemCalls returns the real system calls.
func SystemCalls() Calls {
	return Calls{
		Chroot:     syscall.Chroot,
		Chdir:      syscall.Chdir,
		Setgroups:  syscall.Setgroups,
		Setresgid:  syscall.Setresgid,
		Setresuid:  syscall.Setresuid,
		Getuid:     syscall.Getuid,
		Getgid:     syscall.Getgid,
		NoNewPrivs: setNoNewPrivs,
	}
}

func setNoNewPrivs() error {
	_, _, errno := syscall.AllThreadsSyscall(syscall.SYS_PRCTL, unix.PR_SET_NO_NEW_PRIVS, 1, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
