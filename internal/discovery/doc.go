// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discovery finds serial device nodes by globbing well known path patterns.
//
// Results keep pattern order: every match of the first pattern comes before
// any match of the second. Within one pattern the matches are returned in the
// order the glob produced them unless an Order says otherwise.
package discovery
