// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the command that flashes every discovered device.
package run

import (
	"context"

	"github.com/matt-FFFFFF/flashall/cmd/flashall/cmdflags"
	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/matt-FFFFFF/flashall/internal/discovery"
	"github.com/matt-FFFFFF/flashall/internal/flasher"
	"github.com/matt-FFFFFF/flashall/internal/progress"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

// NewCmd returns the command that discovers devices and runs the upload tool for each one.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Flash every attached serial device",
		Description: `Scan for serial devices and run the upload tool once per device, one at a time.

The device list is printed first, then one "Flashing <port>..." line before each upload.
The upload tool's own output is shown as it runs. Its exit status is not checked: a
failed upload does not stop the remaining devices. If the tool cannot be started at all
the run stops and flashall exits with status 1.`,
		Action: Action,
	}
}

// Action is shared with the root command so that a bare `flashall` flashes.
func Action(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	def, err := cmdflags.Definition(ctx, cmd)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	opts := []flasher.Option{
		flasher.WithReporter(progress.Multi{
			progress.NewConsoleReporter(cmd.Root().Writer),
			progress.NewLogReporter(ctx),
		}),
	}

	if cmd.Bool(cmdflags.DryRunFlag) {
		opts = append(opts, flasher.WithRunner(&flasher.DryRunner{W: cmd.Root().Writer}))
	}

	scanner := discovery.NewScanner(def.Patterns, def.DeviceOrder())

	if err := flasher.Run(ctx, scanner, flasher.New(def, opts...)); err != nil {
		logger.Error("flashing stopped", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}
