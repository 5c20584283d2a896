// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package privilege

import (
	"github.com/bureau-foundation/privexec/lib/process"
)

// Calls are the system calls a Dropper makes. Tests substitute fakes;
// [SystemCalls] returns the real ones.
type Calls struct {
	Chroot     func(path string) error
	Chdir      func(path string) error
	Setgroups  func(gids []int) error
	Setresgid  func(rgid, egid, sgid int) error
	Setresuid  func(ruid, euid, suid int) error
	Getuid     func() int
	Getgid     func() int
	NoNewPrivs func() error
}

// Dropper applies confinement and identity changes.
type Dropper struct {
	Calls Calls

	// RefuseRoot rejects uid 0 or gid 0 as a target.
	RefuseRoot bool

	// NoNewPrivs sets PR_SET_NO_NEW_PRIVS after the identity change,
	// so setuid binaries in the target cannot regain privilege.
	NoNewPrivs bool
}

// NewDropper returns a Dropper using the real system calls that refuses
// root targets and sets no_new_privs.
func NewDropper() *Dropper {
	return &Dropper{Calls: SystemCalls(), RefuseRoot: true, NoNewPrivs: true}
}

// Chroot changes the root directory to dir and the working directory
// to the new root.
func (d *Dropper) Chroot(dir string) error {
	if err := d.Calls.Chroot(dir); err != nil {
		return process.Fatalf("Chroot", "chroot(%q) failed: %w", dir, err)
	}
	if err := d.Calls.Chdir("/"); err != nil {
		return process.Fatalf("Chroot", "chdir(\"/\") failed: %w", err)
	}
	return nil
}

// SetUIDGID permanently switches to uid and gid, with gid as the only
// supplementary group, and verifies the switch took effect.
func (d *Dropper) SetUIDGID(uid, gid uint32) error {
	if d.RefuseRoot && (uid == 0 || gid == 0) {
		return process.Fatalf("SetUIDGID", "refusing to drop privileges to uid %d gid %d", uid, gid)
	}
	u, g := int(uid), int(gid)
	if err := d.Calls.Setgroups([]int{g}); err != nil {
		return process.Fatalf("SetUIDGID", "setgroups failed: %w", err)
	}
	if err := d.Calls.Setresgid(g, g, g); err != nil {
		return process.Fatalf("SetUIDGID", "setresgid failed: %w", err)
	}
	if err := d.Calls.Setresuid(u, u, u); err != nil {
		return process.Fatalf("SetUIDGID", "setresuid failed: %w", err)
	}
	if d.Calls.Getgid() != g || d.Calls.Getuid() != u {
		return process.Fatalf("SetUIDGID", "credentials did not change (uid %d gid %d, want %d %d)",
			d.Calls.Getuid(), d.Calls.Getgid(), u, g)
	}
	if d.NoNewPrivs {
		if err := d.Calls.NoNewPrivs(); err != nil {
			return process.Fatalf("SetUIDGID", "cannot set no_new_privs flag: %w", err)
		}
	}
	return nil
}

// Chroot confines the process with the default Dropper.
func Chroot(dir string) error { return NewDropper().Chroot(dir) }

// SetUIDGID drops privileges with the default Dropper.
func SetUIDGID(uid, gid uint32) error { return NewDropper().SetUIDGID(uid, gid) }
