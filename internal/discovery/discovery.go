// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/matt-FFFFFF/flashall/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// PatternUSB matches USB-serial adapters (FTDI, CH340, CP210x).
	PatternUSB = "/dev/ttyUSB*"
	// PatternACM matches USB CDC-ACM devices (native USB boards).
	PatternACM = "/dev/ttyACM*"
)

// DefaultPatterns is the scan order used when no patterns are configured.
var DefaultPatterns = []string{PatternUSB, PatternACM}

// ErrBadPattern is returned when a pattern is malformed.
var ErrBadPattern = errors.New("bad device pattern")

// FsFactory returns the filesystem scanned by NewScanner.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Scanner globs a fixed list of patterns.
type Scanner struct {
	Fs       afero.Fs
	Patterns []string
	Order    Order
}

// NewScanner returns a Scanner over FsFactory().
// Nil patterns select DefaultPatterns and an empty order selects OrderAsFound.
func NewScanner(patterns []string, order Order) *Scanner {
	if patterns == nil {
		patterns = DefaultPatterns
	}

	if order == "" {
		order = OrderAsFound
	}

	return &Scanner{
		Fs:       FsFactory(),
		Patterns: patterns,
		Order:    order,
	}
}

// Discover returns the paths matching each pattern in turn.
// Finding nothing is not an error and yields an empty, non-nil slice.
func (s *Scanner) Discover(ctx context.Context) ([]string, error) {
	ports := make([]string, 0)

	for _, pattern := range s.Patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadPattern, pattern, err)
		}

		matches, err := afero.Glob(s.Fs, pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadPattern, pattern, err)
		}

		ctxlog.Debug(ctx, "pattern scanned", "pattern", pattern, "matches", matches)

		ports = append(ports, s.Order.Apply(matches)...)
	}

	return ports, nil
}
