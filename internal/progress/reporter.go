// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/flashall/internal/color"
	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
)

// ConsoleReporter prints the user facing status lines:
//
//	Found ports: ['/dev/ttyUSB0', '/dev/ttyACM3']
//	Flashing /dev/ttyUSB0...
//
// Other event types are ignored.
type ConsoleReporter struct {
	w       io.Writer
	painter color.Painter
}

// NewConsoleReporter returns a ConsoleReporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w, painter: color.For(w)}
}

// Report implements Reporter.
func (c *ConsoleReporter) Report(event Event) {
	switch event.Type {
	case EventDiscovered:
		fmt.Fprintf(c.w, "%s %s\n", c.painter.Paint("Found ports:", color.Bold), FormatPorts(event.Ports)) //nolint:errcheck
	case EventFlashing:
		fmt.Fprintf(c.w, "%s %s...\n", c.painter.Paint("Flashing", color.Bold, color.FgCyan), event.Port) //nolint:errcheck
	}
}

// FormatPorts renders ports as a bracketed, comma separated list of single-quoted paths.
func FormatPorts(ports []string) string {
	quoted := make([]string, len(ports))
	for i, p := range ports {
		quoted[i] = "'" + p + "'"
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

// LogReporter writes every event to the context logger.
type LogReporter struct {
	ctx context.Context //nolint:containedctx
}

// NewLogReporter returns a LogReporter using the logger carried by ctx.
func NewLogReporter(ctx context.Context) *LogReporter {
	return &LogReporter{ctx: ctx}
}

// Report implements Reporter.
func (l *LogReporter) Report(event Event) {
	logger := ctxlog.Logger(l.ctx).With("event", event.Type.String())

	switch event.Type {
	case EventDiscovered:
		logger.Info("devices discovered", "count", len(event.Ports), "ports", event.Ports)
	case EventFlashing:
		logger.Debug("starting upload", "port", event.Port, "command", event.Data.Command)
	case EventFinished:
		logger.Debug("upload tool exited", "port", event.Port, "exitCode", event.Data.ExitCode, "duration", event.Data.Duration.String())
	case EventAborted:
		logger.Error("run aborted", "port", event.Port, "error", event.Data.Error)
	}
}
