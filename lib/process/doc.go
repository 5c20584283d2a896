// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process classifies unrecoverable errors and converts them to
// process termination at the binary boundary.
//
// Core packages (lib/launch, lib/entropy, lib/privilege) never call
// os.Exit. When they hit a condition that must not be continued past,
// such as a half-sanitized environment or an exec that returned, they
// return a [*FatalError]. The only place that turns such an error into
// an exit is [Terminate], called from main() or from the thin
// launch.Run wrapper. This keeps the core testable: a test asserts on
// [IsFatal] instead of observing a dead process.
//
// Two outcomes exist besides fatal errors:
//
//   - [ExitError] carries an explicit exit code, including zero. The
//     launcher returns Exit(0) for a launch with no command, which is a
//     defined success and not an error condition.
//   - Any other error is treated as a generic failure (exit 1).
//
// This package and lib/version are the only packages that write raw
// text to stderr or stdout outside of CLI code.
package process
