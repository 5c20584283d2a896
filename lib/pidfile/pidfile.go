// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pidfile writes process id files. The pid is written before
// exec, and exec preserves it, so the file names the launched program.
package pidfile

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bureau-foundation/privexec/lib/process"
)

// Write records the current process id in path.
func Write(path string) error {
	return WritePID(path, os.Getpid())
}

// WritePID creates or truncates path and writes pid in decimal with no
// trailing newline. Any failure is fatal.
func WritePID(path string, pid int) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return process.Fatalf("WritePID", "open(%s) failed: %w", path, err)
	}
	if _, err := file.WriteString(strconv.Itoa(pid)); err != nil {
		file.Close()
		return process.Fatalf("WritePID", "write(%s, %d) failed: %w", path, pid, err)
	}
	if err := file.Close(); err != nil {
		return process.Fatalf("WritePID", "close(%s) failed: %w", path, err)
	}
	return nil
}

// Read parses the pid stored in path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("parsing pid file %s: %w", path, err)
	}
	return pid, nil
}

// Exists reports whether path can be opened with flag (os.O_RDONLY,
// os.O_WRONLY, ...). The error explains a false result.
func Exists(path string, flag int) (bool, error) {
	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return false, err
	}
	file.Close()
	return true, nil
}
