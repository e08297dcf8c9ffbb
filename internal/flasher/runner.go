// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package flasher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/flashall/internal/commandinpath"
	"github.com/matt-FFFFFF/flashall/internal/oscommand"
)

// Invocation is one upload tool command line for one device.
type Invocation struct {
	Program string   // Name or path of the upload tool.
	Args    []string // Arguments, not including Program.
	Port    string   // Device path, also present in Args.
	Cwd     string   // Working directory, empty inherits ours.
}

// Argv returns Program followed by Args.
func (i Invocation) Argv() []string {
	return append([]string{i.Program}, i.Args...)
}

// String renders the invocation as a shell-like command line.
func (i Invocation) String() string {
	argv := i.Argv()
	quoted := make([]string, len(argv))

	for n, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n'\"\\$`") {
			quoted[n] = fmt.Sprintf("%q", a)
			continue
		}

		quoted[n] = a
	}

	return strings.Join(quoted, " ")
}

// Runner executes an invocation to completion.
// A non-nil error means the tool could not be launched and the run must stop.
// A tool that ran and failed is reported through the Result only.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*oscommand.Result, error)
}

// OSRunner resolves the program on PATH and runs it attached to the console.
type OSRunner struct {
	// LookPath resolves Program. Defaults to commandinpath.Find.
	LookPath func(string) (string, error)
}

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, inv Invocation) (*oscommand.Result, error) {
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = commandinpath.Find
	}

	path, err := lookPath(inv.Program)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrToolNotFound, err)
	}

	cmd := &oscommand.Command{
		Label: inv.Port,
		Path:  path,
		Args:  inv.Args,
		Cwd:   inv.Cwd,
	}

	res := cmd.Run(ctx)
	if errors.Is(res.Error, oscommand.ErrCouldNotStartProcess) && ctx.Err() == nil {
		return res, fmt.Errorf("%w: %w", ErrToolNotFound, res.Error)
	}

	return res, nil
}

// DryRunner prints each invocation instead of running it.
type DryRunner struct {
	W io.Writer
}

// Run implements Runner.
func (r *DryRunner) Run(_ context.Context, inv Invocation) (*oscommand.Result, error) {
	fmt.Fprintln(r.W, inv.String()) //nolint:errcheck

	return &oscommand.Result{Label: inv.Port, Status: oscommand.StatusSuccess}, nil
}
