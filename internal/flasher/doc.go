// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package flasher invokes the external upload tool once per device, in order.
//
// The tool's exit status is never inspected: a failed upload is the tool's
// business and the loop moves on to the next device. The only failure that
// stops a run is being unable to launch the tool at all.
package flasher
