// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/matt-FFFFFF/flashall/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()

	assert.Equal(t, "pio", d.Program)
	assert.Equal(t, []string{"run", "-t", "upload"}, d.Args)
	assert.Equal(t, "--upload-port", d.PortFlag)
	assert.Equal(t, []string{"/dev/ttyUSB*", "/dev/ttyACM*"}, d.Patterns)
	assert.Equal(t, discovery.OrderAsFound, d.DeviceOrder())
	require.NoError(t, d.Validate())

	d.Args[0] = "changed"
	assert.Equal(t, "run", DefaultArgs[0], "Default must not share slices with package defaults")
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, d *Definition)
		wantErr []error
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, d *Definition) {
				assert.Equal(t, Default(), d)
			},
		},
		{
			name: "partial override",
			yaml: `
program: platformio
working_dir: ./firmware
`,
			check: func(t *testing.T, d *Definition) {
				assert.Equal(t, "platformio", d.Program)
				assert.Equal(t, "./firmware", d.WorkingDir)
				assert.Equal(t, DefaultArgs, d.Args)
				assert.Equal(t, discovery.DefaultPatterns, d.Patterns)
			},
		},
		{
			name: "patterns and order",
			yaml: `
patterns:
  - /dev/ttyACM*
order: natural
args: [run, -e, esp32dev, -t, upload]
`,
			check: func(t *testing.T, d *Definition) {
				assert.Equal(t, []string{"/dev/ttyACM*"}, d.Patterns)
				assert.Equal(t, discovery.OrderNatural, d.DeviceOrder())
				assert.Equal(t, []string{"run", "-e", "esp32dev", "-t", "upload"}, d.Args)
			},
		},
		{
			name:    "unknown key",
			yaml:    "programme: pio\n",
			wantErr: []error{ErrInvalidYaml},
		},
		{
			name:    "not yaml",
			yaml:    "program: [unterminated\n",
			wantErr: []error{ErrInvalidYaml},
		},
		{
			name: "every validation problem is reported",
			yaml: `
program: ""
port_flag: ""
patterns: ["/dev/tty[USB"]
order: random
args: [run, ""]
`,
			wantErr: []error{
				ErrInvalidConfig,
				ErrNoProgram,
				ErrNoPortFlag,
				ErrEmptyArg,
				discovery.ErrBadPattern,
				discovery.ErrUnknownOrder,
			},
		},
		{
			name:    "no patterns",
			yaml:    "patterns: []\n",
			wantErr: []error{ErrInvalidConfig, ErrNoPatterns},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FromYAML([]byte(tt.yaml))
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				assert.Nil(t, d)

				for _, want := range tt.wantErr {
					assert.ErrorIs(t, err, want)
				}

				return
			}

			require.NoError(t, err)
			tt.check(t, d)
		})
	}
}

func TestToYAMLRoundTrip(t *testing.T) {
	d := Default()
	d.Order = string(discovery.OrderNatural)

	b, err := d.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(b), "program: pio")
	assert.NotContains(t, string(b), "working_dir")

	back, err := FromYAML(b)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}
