// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package oscommand

import "time"

// Status summarises how a child process ended.
type Status int

const (
	// StatusUnknown is the zero value.
	StatusUnknown Status = iota
	// StatusSuccess means the child exited with code 0.
	StatusSuccess
	// StatusFailed means the child ran and exited with a non-zero code or was terminated by a signal.
	StatusFailed
	// StatusError means the child could not be started or was killed by the watchdog.
	StatusError
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result records the outcome of Command.Run.
type Result struct {
	Label    string
	Pid      int
	ExitCode int
	Error    error
	Status   Status
	Duration time.Duration
}
