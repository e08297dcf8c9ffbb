// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decides whether a writer should receive ANSI colour codes
// and wraps strings in those codes.
//
// NO_COLOR always wins. FORCE_COLOR enables colour for any writer.
// Otherwise colour is only used when the writer is a terminal, as reported by
// golang.org/x/term.
package color
