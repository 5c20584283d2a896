// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/bureau-foundation/privexec/lib/passwd"
	"github.com/bureau-foundation/privexec/lib/process"
)

// DefaultPath is the PATH every sanitized environment receives.
const DefaultPath = "/bin:/usr/bin:/usr/local/bin"

// uidBufferSize bounds the decimal form of a uid, terminator included.
const uidBufferSize = 20

// SanctionedVariables lists every key a sanitized environment holds,
// in the order they are set.
var SanctionedVariables = []string{
	"UID", "USER", "USERNAME", "LOGNAME", "HOME", "PWD", "SHELL", "PATH",
}

// Environment is the process environment.
type Environment interface {
	Clearenv() error
	Setenv(key, value string) error
}

// ProcessEnvironment operates on the real process environment.
type ProcessEnvironment struct{}

// Clearenv removes every variable and verifies none remain.
func (ProcessEnvironment) Clearenv() error {
	os.Clearenv()
	if remaining := len(os.Environ()); remaining != 0 {
		return fmt.Errorf("%d variables remain after clearing", remaining)
	}
	return nil
}

// Setenv sets one variable.
func (ProcessEnvironment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// Sanitizer rebuilds the environment for a target account.
type Sanitizer struct {
	Resolver    passwd.Resolver
	Environment Environment
	Chdir       func(dir string) error
	Logger      *slog.Logger
}

// NewSanitizer returns a Sanitizer wired to the real process and the
// system account database.
func NewSanitizer(logger *slog.Logger) *Sanitizer {
	return &Sanitizer{
		Resolver:    passwd.System{},
		Environment: ProcessEnvironment{},
		Chdir:       os.Chdir,
		Logger:      logger,
	}
}

// FixEnvironment sanitizes the real process for uid using the system
// account database. See Sanitizer.Sanitize.
func FixEnvironment(uid uint32, chdirHome bool) error {
	_, err := NewSanitizer(nil).Sanitize(uid, chdirHome)
	return err
}

// Sanitize clears the environment, sets the eight sanctioned variables
// from uid's account record and changes directory to the account's home
// (chdirHome) or to "/". It returns the resolved identity.
//
// The environment is cleared before the account is resolved, so even a
// failed call leaves nothing inherited behind.
func (s *Sanitizer) Sanitize(uid uint32, chdirHome bool) (passwd.Identity, error) {
	const op = "FixEnvironment"

	if err := s.Environment.Clearenv(); err != nil {
		return passwd.Identity{}, process.Fatalf(op, "clearenv failed: %w", err)
	}

	identity, err := s.Resolver.LookupUID(uid)
	if err != nil {
		return passwd.Identity{}, process.Fatalf(op, "user uid %d does not exist; not execing: %w", uid, err)
	}

	uidText := strconv.FormatUint(uint64(uid), 10)
	if len(uidText) >= uidBufferSize {
		return passwd.Identity{}, process.Fatalf(op, "UID was truncated (%d); not execing", len(uidText))
	}

	set := func(key, value string) error {
		if err := s.Environment.Setenv(key, value); err != nil {
			return process.Fatalf(op, "failed to sanitize environment (%s); not execing: %w", key, err)
		}
		return nil
	}

	for _, variable := range []struct{ key, value string }{
		{"UID", uidText},
		{"USER", identity.Name},
		{"USERNAME", identity.Name},
		{"LOGNAME", identity.Name},
		{"HOME", identity.Home},
		{"PWD", identity.Home},
	} {
		if err := set(variable.key, variable.value); err != nil {
			return passwd.Identity{}, err
		}
	}

	if chdirHome {
		if err := s.Chdir(identity.Home); err != nil {
			return passwd.Identity{}, process.Fatalf(op, "failed to chdir to uid %d's homedir; not execing: %w", uid, err)
		}
	} else {
		if err := s.Chdir("/"); err != nil {
			return passwd.Identity{}, process.Fatalf(op, "failed to chdir to root directory; not execing: %w", err)
		}
	}

	if err := set("SHELL", identity.Shell); err != nil {
		return passwd.Identity{}, err
	}
	if err := set("PATH", DefaultPath); err != nil {
		return passwd.Identity{}, err
	}

	s.logger().Debug("environment sanitized",
		"uid", uid,
		"user", identity.Name,
		"chdir_home", chdirHome,
	)
	return identity, nil
}

// Preview returns the identity and KEY=VALUE environment Sanitize would
// produce for uid, in SanctionedVariables order, without touching the
// process environment or working directory.
func (s *Sanitizer) Preview(uid uint32, chdirHome bool) (passwd.Identity, []string, error) {
	captured := &capturedEnvironment{}
	preview := &Sanitizer{
		Resolver:    s.Resolver,
		Environment: captured,
		Chdir:       func(string) error { return nil },
		Logger:      s.Logger,
	}
	identity, err := preview.Sanitize(uid, chdirHome)
	if err != nil {
		return passwd.Identity{}, nil, err
	}
	return identity, captured.entries, nil
}

// capturedEnvironment collects Setenv calls as KEY=VALUE entries.
type capturedEnvironment struct {
	entries []string
}

func (c *capturedEnvironment) Clearenv() error {
	c.entries = nil
	return nil
}

func (c *capturedEnvironment) Setenv(key, value string) error {
	c.entries = append(c.entries, key+"="+value)
	return nil
}

func (s *Sanitizer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
