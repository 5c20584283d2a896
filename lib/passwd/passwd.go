// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package passwd resolves numeric user ids to account records.
//
// The standard library's os/user does not expose the login shell, and
// the launcher must export SHELL exactly as the account database has
// it. [File] therefore reads passwd(5)-format files directly. [System]
// reads /etc/passwd first and falls back to os/user (which consults NSS
// when cgo is available) for accounts that live elsewhere, such as
// LDAP. A fallback record has no shell field; it gets /bin/sh, the
// passwd(5) default for an empty shell.
package passwd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"strconv"
	"strings"
)

// DefaultPath is the system account database.
const DefaultPath = "/etc/passwd"

// defaultShell is what passwd(5) specifies for an empty shell field.
const defaultShell = "/bin/sh"

// ErrUnknownUser is returned when no account has the requested uid.
var ErrUnknownUser = errors.New("unknown user")

// Identity is one account record.
type Identity struct {
	Name  string
	UID   uint32
	GID   uint32
	Home  string
	Shell string
}

// Resolver looks up accounts by uid.
type Resolver interface {
	LookupUID(uid uint32) (Identity, error)
}

// File resolves accounts from a passwd-format file.
type File struct {
	// Path is the file to read. Empty means DefaultPath.
	Path string
}

// LookupUID returns the first entry in the file whose uid matches.
func (f File) LookupUID(uid uint32) (Identity, error) {
	path := f.Path
	if path == "" {
		path = DefaultPath
	}
	file, err := os.Open(path)
	if err != nil {
		return Identity{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	identity, err := Scan(file, uid)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", path, err)
	}
	return identity, nil
}

// Scan reads passwd-format lines from r and returns the first entry
// with the given uid. Comments, blank lines, NIS compat entries and
// malformed lines are skipped.
func Scan(r io.Reader, uid uint32) (Identity, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		identity, ok := ParseLine(scanner.Text())
		if ok && identity.UID == uid {
			return identity, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Identity{}, fmt.Errorf("reading account database: %w", err)
	}
	return Identity{}, fmt.Errorf("uid %d: %w", uid, ErrUnknownUser)
}

// ParseLine parses one name:password:uid:gid:gecos:home:shell line.
func ParseLine(line string) (Identity, bool) {
	if line == "" || line[0] == '#' || line[0] == '+' || line[0] == '-' {
		return Identity{}, false
	}
	fields := strings.Split(line, ":")
	if len(fields) != 7 || fields[0] == "" {
		return Identity{}, false
	}
	uid, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return Identity{}, false
	}
	gid, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return Identity{}, false
	}
	return Identity{
		Name:  fields[0],
		UID:   uint32(uid),
		GID:   uint32(gid),
		Home:  fields[5],
		Shell: fields[6],
	}, true
}

// System resolves from /etc/passwd, then through os/user.
type System struct {
	// Path overrides DefaultPath; used by tests.
	Path string
}

// LookupUID implements Resolver.
func (s System) LookupUID(uid uint32) (Identity, error) {
	identity, fileErr := File{Path: s.Path}.LookupUID(uid)
	if fileErr == nil {
		return identity, nil
	}

	account, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		var unknown user.UnknownUserIdError
		if errors.As(err, &unknown) {
			return Identity{}, fmt.Errorf("uid %d: %w", uid, ErrUnknownUser)
		}
		return Identity{}, errors.Join(fileErr, fmt.Errorf("looking up uid %d: %w", uid, err))
	}
	gid, err := strconv.ParseUint(account.Gid, 10, 32)
	if err != nil {
		return Identity{}, fmt.Errorf("uid %d has invalid gid %q", uid, account.Gid)
	}
	return Identity{
		Name:  account.Username,
		UID:   uid,
		GID:   uint32(gid),
		Home:  account.HomeDir,
		Shell: defaultShell,
	}, nil
}

// Fixed resolves from an in-memory table. It pins an account resolved
// before a chroot so later lookups do not depend on the new root's
// passwd file.
type Fixed map[uint32]Identity

// LookupUID implements Resolver.
func (f Fixed) LookupUID(uid uint32) (Identity, error) {
	if identity, ok := f[uid]; ok {
		return identity, nil
	}
	return Identity{}, fmt.Errorf("uid %d: %w", uid, ErrUnknownUser)
}
