// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdflags holds the flags shared by every flashall command and turns
// them into a validated configuration.
package cmdflags

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/flashall/internal/config"
	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/matt-FFFFFF/flashall/internal/discovery"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	ConfigFlag     = "config"
	ProgramFlag    = "program"
	PatternFlag    = "pattern"
	OrderFlag      = "order"
	WorkingDirFlag = "working-dir"
	DryRunFlag     = "dry-run"
	LogFormatFlag  = "log-format"
)

// ErrLoadConfig is returned when the configuration file cannot be fetched or parsed.
var ErrLoadConfig = errors.New("failed to load configuration")

// New returns the flags defined on the root command and inherited by every subcommand.
func New() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage: "URL of a YAML configuration file. " +
				"Supports Hashicorp's go-getter syntax, e.g. git::https://host/repo.git//flashall.yaml",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     ProgramFlag,
			Usage:    "Upload tool to run for each device",
			Value:    config.DefaultProgram,
			OnlyOnce: true,
		},
		&cli.StringSliceFlag{
			Name:  PatternFlag,
			Usage: "Device glob pattern, repeat to scan several. Replaces the default /dev/ttyUSB* and /dev/ttyACM*",
		},
		&cli.StringFlag{
			Name:     OrderFlag,
			Usage:    "Order of the matches of each pattern: as-found, lexical or natural",
			Value:    string(discovery.OrderAsFound),
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      WorkingDirFlag,
			Aliases:   []string{"d"},
			Usage:     "Directory the upload tool is started in, normally the firmware project",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:     DryRunFlag,
			Aliases:  []string{"n"},
			Usage:    "Print the upload commands instead of running them",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     LogFormatFlag,
			Usage:    "Log format on stderr: pretty or json. The level is set with " + ctxlog.LogLevelEnvVar,
			Value:    ctxlog.FormatPretty,
			OnlyOnce: true,
		},
	}
}

// Before installs the logger selected by --log-format into the context.
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logger, err := ctxlog.NewLogger(cmd.Root().ErrWriter, cmd.String(LogFormatFlag))
	if err != nil {
		return ctx, err
	}

	return ctxlog.New(ctx, logger), nil
}

// Definition returns the defaults, overlaid with the --config file, overlaid
// with any flag the user set explicitly.
func Definition(ctx context.Context, cmd *cli.Command) (*config.Definition, error) {
	def := config.Default()

	if url := strings.TrimSpace(cmd.String(ConfigFlag)); url != "" {
		data, err := config.Fetch(ctx, url)
		if err != nil {
			return nil, errors.Join(ErrLoadConfig, err)
		}

		def, err = config.FromYAML(data)
		if err != nil {
			return nil, errors.Join(ErrLoadConfig, fmt.Errorf("%s: %w", url, err))
		}

		ctxlog.Debug(ctx, "configuration loaded", "url", url)
	}

	if cmd.IsSet(ProgramFlag) {
		def.Program = cmd.String(ProgramFlag)
	}

	if cmd.IsSet(PatternFlag) {
		def.Patterns = cmd.StringSlice(PatternFlag)
	}

	if cmd.IsSet(OrderFlag) {
		def.Order = cmd.String(OrderFlag)
	}

	if cmd.IsSet(WorkingDirFlag) {
		def.WorkingDir = cmd.String(WorkingDirFlag)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return def, nil
}
