// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds the settings for a flashing run.
//
// Every field has a default that reproduces the stock behaviour:
// glob /dev/ttyUSB* then /dev/ttyACM* and run
// `pio run -t upload --upload-port <port>` for each match.
// A YAML file may override any subset of fields.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/flashall/internal/discovery"
)

const (
	// DefaultProgram is the PlatformIO command line launcher.
	DefaultProgram = "pio"
	// DefaultPortFlag is the flag that precedes the device path.
	DefaultPortFlag = "--upload-port"
)

// DefaultArgs are passed before the port flag.
var DefaultArgs = []string{"run", "-t", "upload"}

var (
	// ErrInvalidYaml is returned when the configuration cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidConfig is returned when a decoded configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoProgram is returned when program is empty.
	ErrNoProgram = errors.New("program must not be empty")
	// ErrNoPortFlag is returned when port_flag is empty.
	ErrNoPortFlag = errors.New("port_flag must not be empty")
	// ErrNoPatterns is returned when patterns is empty.
	ErrNoPatterns = errors.New("at least one device pattern is required")
	// ErrEmptyArg is returned when args contains an empty string.
	ErrEmptyArg = errors.New("args must not contain empty strings")
)

// Definition is the configuration of one flashing run.
type Definition struct {
	Program    string   `yaml:"program"`
	Args       []string `yaml:"args"`
	PortFlag   string   `yaml:"port_flag"`
	Patterns   []string `yaml:"patterns"`
	Order      string   `yaml:"order"`
	WorkingDir string   `yaml:"working_dir,omitempty"`
}

// Default returns the stock configuration.
func Default() *Definition {
	return &Definition{
		Program:  DefaultProgram,
		Args:     slices.Clone(DefaultArgs),
		PortFlag: DefaultPortFlag,
		Patterns: slices.Clone(discovery.DefaultPatterns),
		Order:    string(discovery.OrderAsFound),
	}
}

// FromYAML overlays yamlData on Default and validates the result.
// Unknown keys are rejected.
func FromYAML(yamlData []byte) (*Definition, error) {
	def := Default()

	if len(strings.TrimSpace(string(yamlData))) == 0 {
		return def, nil
	}

	if err := yaml.UnmarshalWithOptions(yamlData, def, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYaml, err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return def, nil
}

// Validate reports every problem with d at once.
func (d *Definition) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(d.Program) == "" {
		result = multierror.Append(result, ErrNoProgram)
	}

	if strings.TrimSpace(d.PortFlag) == "" {
		result = multierror.Append(result, ErrNoPortFlag)
	}

	if slices.Contains(d.Args, "") {
		result = multierror.Append(result, ErrEmptyArg)
	}

	if len(d.Patterns) == 0 {
		result = multierror.Append(result, ErrNoPatterns)
	}

	for _, p := range d.Patterns {
		if _, err := filepath.Match(p, ""); err != nil || p == "" {
			result = multierror.Append(result, fmt.Errorf("%w: %q", discovery.ErrBadPattern, p))
		}
	}

	if _, err := discovery.ParseOrder(d.Order); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// DeviceOrder returns the parsed Order. It assumes Validate succeeded.
func (d *Definition) DeviceOrder() discovery.Order {
	o, err := discovery.ParseOrder(d.Order)
	if err != nil {
		return discovery.OrderAsFound
	}

	return o
}

// ToYAML renders d as YAML.
func (d *Definition) ToYAML() ([]byte, error) {
	return yaml.Marshal(d)
}
