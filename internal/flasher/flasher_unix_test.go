// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package flasher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/flashall/internal/commandinpath"
	"github.com/matt-FFFFFF/flashall/internal/config"
	"github.com/matt-FFFFFF/flashall/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool installs an executable named pio that logs its arguments and then runs tail.
func fakeTool(t *testing.T, tail string) string {
	t.Helper()

	dir := t.TempDir()
	logFile := filepath.Join(dir, "calls.log")
	script := "#!/bin/sh\necho \"$*\" >> \"" + logFile + "\"\n" + tail + "\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pio"), []byte(script), 0o755))
	t.Setenv("PATH", dir)

	return logFile
}

func readCalls(t *testing.T, logFile string) []string {
	t.Helper()

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)

	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

func TestOSRunner_FailingToolCompletesLoop(t *testing.T) {
	logFile := fakeTool(t, "exit 1")

	var out bytes.Buffer

	f := New(config.Default(), WithReporter(progress.NewConsoleReporter(&out)))
	err := f.FlashAll(context.Background(), []string{"/dev/ttyUSB0", "/dev/ttyACM3"})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"run -t upload --upload-port /dev/ttyUSB0",
		"run -t upload --upload-port /dev/ttyACM3",
	}, readCalls(t, logFile))
}

func TestOSRunner_WorkingDirectory(t *testing.T) {
	logFile := fakeTool(t, "exit 0")
	project := t.TempDir()

	def := config.Default()
	def.Program = "sh"
	def.Args = []string{"-c", "pwd -P >> " + logFile + "; :"}
	def.WorkingDir = project

	t.Setenv("PATH", "/bin:/usr/bin")

	require.NoError(t, New(def).Flash(context.Background(), "/dev/ttyUSB0"))

	want, err := filepath.EvalSymlinks(project)
	require.NoError(t, err)
	assert.Equal(t, []string{want}, readCalls(t, logFile))
}

func TestOSRunner_MissingToolAborts(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	var out bytes.Buffer

	f := New(config.Default(), WithReporter(progress.NewConsoleReporter(&out)))
	err := f.FlashAll(context.Background(), []string{"/dev/ttyUSB0", "/dev/ttyACM3"})

	require.ErrorIs(t, err, ErrToolNotFound)
	assert.ErrorIs(t, err, commandinpath.ErrNotFound)
	assert.NotContains(t, out.String(), "Flashing /dev/ttyACM3")
}

func TestOSRunner_InterruptStopsRemainingDevices(t *testing.T) {
	logFile := fakeTool(t, "PATH=/bin:/usr/bin exec sleep 5")

	var out bytes.Buffer

	f := New(config.Default(), WithReporter(progress.NewConsoleReporter(&out)))

	go func() {
		time.Sleep(500 * time.Millisecond)
		assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))
	}()

	start := time.Now()
	err := f.FlashAll(context.Background(), []string{"/dev/ttyUSB0", "/dev/ttyACM3"})

	require.ErrorIs(t, err, ErrInterrupted)
	assert.Less(t, time.Since(start), 4*time.Second, "the signal is forwarded to the running tool")
	assert.Equal(t, []string{"run -t upload --upload-port /dev/ttyUSB0"}, readCalls(t, logFile))
	assert.NotContains(t, out.String(), "Flashing /dev/ttyACM3")
}
