// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/privexec/lib/argv"
	"github.com/bureau-foundation/privexec/lib/entropy"
	"github.com/bureau-foundation/privexec/lib/logging"
)

// EnvironmentVariable names the config file for [Load].
const EnvironmentVariable = "BUREAU_PRIVEXEC_CONFIG"

// PathLimit bounds every path and command field, matching PATH_MAX.
const PathLimit = 4096

// ArgsLimit bounds the unsplit argument string.
const ArgsLimit = 128 * 1024

// Config is the master configuration for bureau-privexec.
type Config struct {
	// Launch describes the identity and target process.
	Launch LaunchConfig `yaml:"launch"`

	// Entropy configures seeding for the rand subcommand.
	Entropy EntropyConfig `yaml:"entropy"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`
}

// LaunchConfig describes one privileged launch.
type LaunchConfig struct {
	// UID is the account to become. Required, either here or via --uid.
	UID *uint32 `yaml:"uid"`

	// GID overrides the primary group from the passwd entry.
	GID *uint32 `yaml:"gid"`

	// ChdirHome changes into the account's home directory instead of /.
	ChdirHome bool `yaml:"chdir_home"`

	// Command is the absolute path of the program to execute. Empty
	// means exit successfully without launching anything.
	Command string `yaml:"command"`

	// Args is the unsplit argument string handed to the tokenizer.
	Args string `yaml:"args"`

	// Chroot, when set, is entered before privileges are dropped.
	Chroot string `yaml:"chroot"`

	// DropPrivileges switches to UID/GID before exec. Disabling it only
	// makes sense when already running as the target account.
	DropPrivileges bool `yaml:"drop_privileges"`

	// NoNewPrivs sets PR_SET_NO_NEW_PRIVS after dropping privileges.
	NoNewPrivs bool `yaml:"no_new_privs"`

	// PIDFile, when set, receives the launcher's pid before exec. The
	// pid survives exec, so it names the launched program.
	PIDFile string `yaml:"pidfile"`

	// Record, when set, receives a CBOR launch record before exec.
	Record string `yaml:"record"`
}

// EntropyConfig configures the entropy source.
type EntropyConfig struct {
	// Device is the random device used when getrandom is unavailable.
	Device string `yaml:"device"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the default configuration. Launch.UID is left unset:
// there is no sensible default identity.
func Default() *Config {
	return &Config{
		Launch: LaunchConfig{
			DropPrivileges: true,
			NoNewPrivs:     true,
		},
		Entropy: EntropyConfig{
			Device: entropy.DefaultDevice,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by BUREAU_PRIVEXEC_CONFIG.
// Unlike [LoadFile], an unset variable is not an error: it yields
// [Default], so a fully flag-driven invocation needs no file.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Unknown keys
// are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over [Default] and expands path variables.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Launch.Command = expandVars(c.Launch.Command, vars)
	c.Launch.Chroot = expandVars(c.Launch.Chroot, vars)
	c.Launch.PIDFile = expandVars(c.Launch.PIDFile, vars)
	c.Launch.Record = expandVars(c.Launch.Record, vars)
	c.Entropy.Device = expandVars(c.Entropy.Device, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Launch.UID == nil {
		errs = append(errs, fmt.Errorf("launch.uid is required"))
	} else if c.Launch.DropPrivileges && *c.Launch.UID == 0 {
		errs = append(errs, fmt.Errorf("launch.uid: refusing to drop privileges to root"))
	}
	if c.Launch.GID != nil && c.Launch.DropPrivileges && *c.Launch.GID == 0 {
		errs = append(errs, fmt.Errorf("launch.gid: refusing to drop privileges to group 0"))
	}

	if c.Launch.Command != "" && !filepath.IsAbs(c.Launch.Command) {
		errs = append(errs, fmt.Errorf("launch.command must be an absolute path, got %q", c.Launch.Command))
	}
	if c.Launch.Chroot != "" && !filepath.IsAbs(c.Launch.Chroot) {
		errs = append(errs, fmt.Errorf("launch.chroot must be an absolute path, got %q", c.Launch.Chroot))
	}

	bounded := []struct {
		name  string
		value string
		limit int
	}{
		{"launch.command", c.Launch.Command, PathLimit},
		{"launch.args", c.Launch.Args, ArgsLimit},
		{"launch.chroot", c.Launch.Chroot, PathLimit},
		{"launch.pidfile", c.Launch.PIDFile, PathLimit},
		{"launch.record", c.Launch.Record, PathLimit},
		{"entropy.device", c.Entropy.Device, PathLimit},
	}
	for _, field := range bounded {
		if _, err := argv.CopyArg(field.name, field.value, field.limit); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Entropy.Device == "" {
		errs = append(errs, fmt.Errorf("entropy.device is required"))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
