// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content digests for executables.
//
// bureau-privexec records the digest of the binary it is about to exec
// in the launch record, so an operator can later confirm which build
// ran under a dropped identity even if the file on disk has since been
// replaced. Digests are keyed BLAKE3 with a fixed domain key, so they
// never collide with plain BLAKE3 sums of the same bytes computed for
// other purposes.
//
// The API surface is three functions:
//
//   - [HashFile] -- streams a file through the keyed hash, returning a
//     [32]byte digest with constant memory usage regardless of size
//   - [FormatDigest] -- converts a digest to its canonical hex string,
//     used in launch records and log output
//   - [ParseDigest] -- parses a hex string back to a [32]byte array,
//     validating length and encoding
package binhash
