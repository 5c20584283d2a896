// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the structured logger used by privexec
// commands. Output goes to a single writer, normally stderr: text when
// that writer is a terminal, JSON otherwise, so scripted callers and
// log collectors get machine-parseable lines.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// DebugEnvironment forces debug level when set to a non-empty value
// other than "0".
const DebugEnvironment = "BUREAU_DEBUG"

// New returns a logger writing to w at the given level. The handler is
// slog.TextHandler when w is an *os.File attached to a terminal and
// slog.JSONHandler otherwise.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if debug := os.Getenv(DebugEnvironment); debug != "" && debug != "0" {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// ParseLevel maps a configuration level name to a slog.Level. The empty
// string is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", name)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
