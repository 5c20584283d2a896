// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for bureau-privexec.
//
// Configuration is loaded from a single file named either by the
// BUREAU_PRIVEXEC_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no discovery and no search path. Flags
// given on the command line are applied by the caller after loading and
// win over the file.
//
// Path fields support ${HOME} and ${VAR:-default} expansion. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Launch, Entropy, Log
//   - [Default] -- returns a Config with defaults filled in
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every problem at once
package config
