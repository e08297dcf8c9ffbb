// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package flasher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/matt-FFFFFF/flashall/internal/config"
	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/matt-FFFFFF/flashall/internal/progress"
	"github.com/matt-FFFFFF/flashall/internal/signalbroker"
)

// ErrToolNotFound is returned when the upload tool cannot be launched.
var ErrToolNotFound = errors.New("upload tool could not be launched")

// ErrInterrupted is returned when a termination signal arrived during the run.
var ErrInterrupted = errors.New("interrupted, remaining devices skipped")

// Flasher builds and runs the upload command for each device.
type Flasher struct {
	Program    string
	Args       []string
	PortFlag   string
	WorkingDir string

	Runner   Runner
	Reporter progress.Reporter

	sigCh chan os.Signal // Injected in tests.
}

// Option configures a Flasher.
type Option func(*Flasher)

// WithRunner replaces the default OSRunner.
func WithRunner(r Runner) Option {
	return func(f *Flasher) {
		f.Runner = r
	}
}

// WithReporter sets where progress events go. The default discards them.
func WithReporter(r progress.Reporter) Option {
	return func(f *Flasher) {
		f.Reporter = r
	}
}

// New returns a Flasher for def.
func New(def *config.Definition, opts ...Option) *Flasher {
	f := &Flasher{
		Program:    def.Program,
		Args:       slices.Clone(def.Args),
		PortFlag:   def.PortFlag,
		WorkingDir: def.WorkingDir,
		Runner:     &OSRunner{},
		Reporter:   progress.NullReporter{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Invocation returns the command line for port:
// Program, Args, PortFlag, port.
func (f *Flasher) Invocation(port string) Invocation {
	return Invocation{
		Program: f.Program,
		Args:    slices.Concat(f.Args, []string{f.PortFlag, port}),
		Port:    port,
		Cwd:     f.WorkingDir,
	}
}

// Flash runs the upload tool for port and waits for it to exit.
// It returns an error only when the tool could not be launched.
func (f *Flasher) Flash(ctx context.Context, port string) error {
	inv := f.Invocation(port)

	f.Reporter.Report(progress.Event{
		Type:      progress.EventFlashing,
		Port:      port,
		Timestamp: time.Now(),
		Data:      progress.EventData{Command: inv.Argv()},
	})

	res, err := f.Runner.Run(ctx, inv)
	if err != nil {
		return err
	}

	ev := progress.Event{Type: progress.EventFinished, Port: port, Timestamp: time.Now()}
	if res != nil {
		ev.Data.ExitCode = res.ExitCode
		ev.Data.Duration = res.Duration
	}

	f.Reporter.Report(ev)

	return nil
}

// FlashAll announces ports and flashes them one after another in the given order.
// It stops at the first launch failure. Once ctx is done or a termination signal
// has arrived, the current upload is left to finish and no further device is started.
func (f *Flasher) FlashAll(ctx context.Context, ports []string) error {
	sigCh := f.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	f.Reporter.Report(progress.Event{
		Type:      progress.EventDiscovered,
		Ports:     ports,
		Timestamp: time.Now(),
	})

	for _, port := range ports {
		if err := stopped(ctx, sigCh); err != nil {
			f.abort(port, err)
			return err
		}

		if err := f.Flash(ctx, port); err != nil {
			f.abort(port, err)
			return err
		}
	}

	ctxlog.Debug(ctx, "all devices processed", "count", len(ports))

	return nil
}

// stopped reports why no further device may be started, or nil.
func stopped(ctx context.Context, sigCh <-chan os.Signal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case s, ok := <-sigCh:
		if ok {
			return fmt.Errorf("%w: %s", ErrInterrupted, s)
		}
	default:
	}

	return nil
}

func (f *Flasher) abort(port string, err error) {
	f.Reporter.Report(progress.Event{
		Type:      progress.EventAborted,
		Port:      port,
		Timestamp: time.Now(),
		Data:      progress.EventData{Error: err},
	})
}

// Discoverer lists the device paths to flash.
type Discoverer interface {
	Discover(ctx context.Context) ([]string, error)
}

// Run discovers devices with d and flashes every one of them with f.
func Run(ctx context.Context, d Discoverer, f *Flasher) error {
	ports, err := d.Discover(ctx)
	if err != nil {
		return err
	}

	return f.FlashAll(ctx, ports)
}
