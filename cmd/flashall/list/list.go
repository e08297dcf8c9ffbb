// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list implements the command that prints discovered devices without flashing them.
package list

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matt-FFFFFF/flashall/cmd/flashall/cmdflags"
	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/matt-FFFFFF/flashall/internal/discovery"
	"github.com/urfave/cli/v3"
)

const jsonFlag = "json"

// NewCmd returns the command that prints the device paths run would flash, in the same order.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the serial devices that would be flashed",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Print a JSON array instead of one path per line",
				Local: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	def, err := cmdflags.Definition(ctx, cmd)
	if err != nil {
		ctxlog.Error(ctx, "invalid configuration", "error", err)
		return cli.Exit("", 1)
	}

	ports, err := discovery.NewScanner(def.Patterns, def.DeviceOrder()).Discover(ctx)
	if err != nil {
		ctxlog.Error(ctx, "device discovery failed", "error", err)
		return cli.Exit("", 1)
	}

	w := cmd.Root().Writer

	if cmd.Bool(jsonFlag) {
		return json.NewEncoder(w).Encode(ports)
	}

	for _, p := range ports {
		fmt.Fprintln(w, p) //nolint:errcheck
	}

	return nil
}
