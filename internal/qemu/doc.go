// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu composes and runs QEMU system virtualization commands
// that boot an Ibis machine. It expects the required QEMU binary to be
// present on the system.
//
// The guest's default console (e.g. /dev/hvc0) is attached to the
// caller's standard streams, so the Ibis shell can be used
// interactively. The console output is watched for kernel panic and
// out of memory messages, which are reported as guest errors after the
// machine terminated.
package qemu
