// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package record writes and reads launch records: small CBOR files
// describing a process that bureau-privexec is about to exec. The
// record is written while the launcher still holds its original
// credentials, before chroot and before privileges are dropped, so the
// path resolves outside any chroot and need not be writable by the
// target user. It describes the planned identity, argv and sanitized
// environment. Values of environment variables are never recorded,
// only their names.
//
// Records are written atomically (temporary file, fsync, rename, fsync
// parent directory) with mode 0600, so a reader never sees a partial
// file. Encoding uses [codec] Core Deterministic CBOR: the same launch
// always produces the same bytes.
package record
