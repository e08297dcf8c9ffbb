// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a single update from a flashing run.
type Event struct {
	Type      EventType
	Port      string    // Device path, empty for EventDiscovered.
	Ports     []string  // Every discovered device path, set for EventDiscovered.
	Timestamp time.Time // When the event occurred.
	Data      EventData
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventDiscovered carries the full device list, reported once per run.
	EventDiscovered EventType = iota
	// EventFlashing is reported immediately before the upload tool is started for a device.
	EventFlashing
	// EventFinished is reported after the upload tool exited, whatever its exit code.
	EventFinished
	// EventAborted is reported when the run stops before reaching every device.
	EventAborted
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventDiscovered:
		return "discovered"
	case EventFlashing:
		return "flashing"
	case EventFinished:
		return "finished"
	case EventAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// EventData holds type specific details.
type EventData struct {
	// For EventFlashing
	Command []string // Full argument vector, program first.

	// For EventFinished
	ExitCode int
	Duration time.Duration

	// For EventAborted
	Error error
}

// Reporter receives progress events.
// Implementations must not retain the Ports slice.
type Reporter interface {
	Report(event Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

// Report implements Reporter.
func (f ReporterFunc) Report(event Event) {
	f(event)
}

// NullReporter discards every event.
type NullReporter struct{}

// Report implements Reporter by doing nothing.
func (NullReporter) Report(Event) {}

// Multi sends each event to every reporter in order.
type Multi []Reporter

// Report implements Reporter.
func (m Multi) Report(event Event) {
	for _, r := range m {
		r.Report(event)
	}
}
