// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package oscommand

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/matt-FFFFFF/flashall/internal/signalbroker"
)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrContextDone is returned when the context was cancelled while the child was running.
	ErrContextDone = errors.New("context done, process killed")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// Command is a single child process invocation.
type Command struct {
	Label  string   // Human readable name used in logs.
	Path   string   // Full path of the executable.
	Args   []string // Arguments, not including the executable name.
	Cwd    string   // Working directory, empty inherits ours.
	Stdin  *os.File // Defaults to os.Stdin.
	Stdout *os.File // Defaults to os.Stdout.
	Stderr *os.File // Defaults to os.Stderr.

	sigCh chan os.Signal // Injected in tests.
}

// Run starts the child, waits for it to exit and reports how it ended.
// It never returns nil.
func (c *Command) Run(ctx context.Context) *Result {
	logger := ctxlog.Logger(ctx).With("label", c.Label)
	res := &Result{Label: c.Label, ExitCode: -1}

	if err := ctx.Err(); err != nil {
		res.Error = errors.Join(ErrCouldNotStartProcess, err)
		res.Status = StatusError

		return res
	}

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	argv := slices.Concat([]string{filepath.Base(c.Path)}, c.Args)

	logger.Debug("starting process", "path", c.Path, "args", c.Args, "cwd", c.Cwd)

	start := time.Now()

	ps, err := os.StartProcess(c.Path, argv, &os.ProcAttr{
		Dir:   c.Cwd,
		Env:   os.Environ(),
		Files: []*os.File{orDefault(c.Stdin, os.Stdin), orDefault(c.Stdout, os.Stdout), orDefault(c.Stderr, os.Stderr)},
	})
	if err != nil {
		res.Error = errors.Join(ErrCouldNotStartProcess, err)
		res.Status = StatusError

		return res
	}

	res.Pid = ps.Pid
	logger.Debug("process started", "pid", ps.Pid)

	done := make(chan struct{})
	killed := make(chan error, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		watch(ctx, ps, sigCh, done, killed)
	}()

	state, waitErr := ps.Wait()

	close(done)
	wg.Wait()

	res.Duration = time.Since(start)
	res.Error = waitErr

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	select {
	case e := <-killed:
		res.Error = errors.Join(res.Error, e)
	default:
	}

	switch {
	case res.Error != nil:
		res.Status = StatusError
	case res.ExitCode == 0:
		res.Status = StatusSuccess
	default:
		res.Status = StatusFailed
	}

	logger.Debug("process finished",
		"pid", ps.Pid,
		"exitCode", res.ExitCode,
		"status", res.Status.String(),
		"duration", res.Duration.Round(time.Millisecond).String(),
	)

	return res
}

// watch forwards signals to ps until done is closed.
// It kills ps on a repeated signal or on context cancellation and reports why on killed.
func watch(ctx context.Context, ps *os.Process, sigCh <-chan os.Signal, done <-chan struct{}, killed chan<- error) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-done:
			return

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				ctxlog.Info(ctx, "received duplicate signal, killing process", "signal", s.String(), "pid", ps.Pid)
				killPs(ctx, ps)

				killed <- ErrDuplicateSignalReceived

				return
			}

			seen[s] = struct{}{}

			ctxlog.Info(ctx, "forwarding signal", "signal", s.String(), "pid", ps.Pid)

			if err := ps.Signal(s); err != nil {
				ctxlog.Debug(ctx, "failed to forward signal", "signal", s.String(), "error", err)
			}

		case <-ctx.Done():
			ctxlog.Info(ctx, "context done, killing process", "pid", ps.Pid)
			killPs(ctx, ps)

			killed <- ErrContextDone

			return
		}
	}
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)
	}
}

func orDefault(f, def *os.File) *os.File {
	if f == nil {
		return def
	}

	return f
}
