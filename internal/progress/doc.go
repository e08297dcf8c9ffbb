// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress reports what a flashing run is doing.
//
// Reporters are called synchronously from the flashing loop. The console
// reporter writes to the same terminal the external tool writes to, so an
// asynchronous reporter could reorder our status lines against the tool's own
// output.
package progress
