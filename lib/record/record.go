// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bureau-foundation/privexec/lib/codec"
)

// Record describes one launch.
type Record struct {
	// Time is when the record was written, at second resolution.
	Time time.Time `cbor:"time"`

	// PID is the launcher's process id, which the target inherits.
	PID int `cbor:"pid"`

	UID  uint32 `cbor:"uid"`
	GID  uint32 `cbor:"gid"`
	User string `cbor:"user"`

	// Command is the path passed to execve.
	Command string `cbor:"command"`

	// Argv is the full argument vector, argv[0] included.
	Argv []string `cbor:"argv"`

	// ArgumentsDropped is set when the tokenizer ran out of slots.
	ArgumentsDropped bool `cbor:"arguments_dropped,omitempty"`

	// EnvironmentKeys are the sorted variable names of the environment
	// the target receives.
	EnvironmentKeys []string `cbor:"environment_keys"`

	WorkingDirectory string `cbor:"working_directory"`

	// BinaryDigest is the hex keyed-BLAKE3 digest of Command, empty if
	// the file could not be read.
	BinaryDigest string `cbor:"binary_digest,omitempty"`
}

// EnvironmentKeys returns the sorted, de-duplicated variable names in a
// KEY=VALUE list. Entries without '=' are kept whole.
func EnvironmentKeys(environ []string) []string {
	keys := make([]string, 0, len(environ))
	for _, entry := range environ {
		key, _, _ := strings.Cut(entry, "=")
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// Write encodes record to path atomically with mode 0600.
func Write(path string, record Record) error {
	data, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling launch record: %w", err)
	}

	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary launch record: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary launch record: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary launch record: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary launch record: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming launch record into place: %w", err)
	}

	parentDirectory, err := os.Open(filepath.Dir(path))
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}

	return nil
}

// Read decodes the record at path. A missing file yields an error
// wrapping os.ErrNotExist.
func Read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}

	var record Record
	if err := codec.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("parsing launch record %s: %w", path, err)
	}
	return record, nil
}

// Diagnose returns the CBOR diagnostic notation of the record at path,
// for inspecting records written by other versions.
func Diagnose(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := codec.Diagnose(data)
	if err != nil {
		return "", fmt.Errorf("diagnosing launch record %s: %w", path, err)
	}
	return text, nil
}
