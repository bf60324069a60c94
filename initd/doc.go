// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package initd implements the lifecycle of the Ibis init process: the
// PID 1 identity guard, system setup (virtual file systems, hostname,
// loopback, environment), the boot banner, supervision of the
// interactive shell and the ordered shutdown into kernel power-off.
//
// The entry point is [Run]. It is expected to be called by the /init
// binary of the initramfs and refuses to do anything when the process is
// not PID 1.
package initd
