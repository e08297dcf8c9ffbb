// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config implements the command that prints the effective configuration.
package config

import (
	"context"

	"github.com/matt-FFFFFF/flashall/cmd/flashall/cmdflags"
	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// NewCmd returns the command that prints the configuration a run would use.
// The output is a valid --config file.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "Print the effective configuration as YAML",
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	def, err := cmdflags.Definition(ctx, cmd)
	if err != nil {
		ctxlog.Error(ctx, "invalid configuration", "error", err)
		return cli.Exit("", 1)
	}

	b, err := def.ToYAML()
	if err != nil {
		return err
	}

	_, err = cmd.Root().Writer.Write(b)

	return err
}
