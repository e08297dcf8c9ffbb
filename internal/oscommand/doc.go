// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package oscommand runs one child process attached to the caller's console.
//
// The child inherits stdin, stdout and stderr so its output is interleaved
// with ours in real time. A watchdog goroutine forwards the first termination
// signal of each kind to the child and kills it on the second one, or when the
// context is cancelled.
package oscommand
