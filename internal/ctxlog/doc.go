// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// Log output goes to stderr so that it never mixes with the device list and
// per-device status lines written to stdout. The level is read once from the
// FLASHALL_LOG_LEVEL environment variable and defaults to WARN.
package ctxlog
