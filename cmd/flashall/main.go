// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the flashall command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/flashall"
	"github.com/matt-FFFFFF/flashall/cmd/flashall/cmdflags"
	"github.com/matt-FFFFFF/flashall/cmd/flashall/config"
	"github.com/matt-FFFFFF/flashall/cmd/flashall/list"
	"github.com/matt-FFFFFF/flashall/cmd/flashall/run"
	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/matt-FFFFFF/flashall/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

func newRootCmd(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			run.NewCmd(),
			list.NewCmd(),
			config.NewCmd(),
		},
		Flags:     cmdflags.New(),
		Before:    cmdflags.Before,
		Action:    run.Action,
		Writer:    stdout,
		ErrWriter: stderr,
		Name:      "flashall",
		Usage:     "Flash firmware to every attached USB serial device",
		Description: `flashall finds serial devices named /dev/ttyUSB* and /dev/ttyACM* and runs
"pio run -t upload --upload-port <device>" for each of them in turn.

Running flashall without a command is the same as "flashall run".`,
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Version:   fmt.Sprintf("%s (commit: %s)", flashall.Version, flashall.Commit),
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd(os.Stdout, os.Stderr).Run(ctx, os.Args)

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("flashing interrupted", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
