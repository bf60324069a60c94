// SPDX-FileCopyrightText: 2026 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"fmt"
	"io"
	"os"
)

// msgShutdownFailed is reported when the kernel rejects the power-off
// request and no orderly way out remains.
const msgShutdownFailed = "Could not initiate shutdown"

const haltMessageFmt = "init has encountered a serious error:\n\t%s\n\n" +
	"Please report a bug and reboot your system.\n"

// halt reports the terminal failure and parks the process.
func halt(sys system, out io.Writer, msg string) {
	fmt.Fprintf(out, haltMessageFmt, msg)
	sys.idle()
}

// Halt reports an unrecoverable error and stops all forward progress.
//
// It never returns. PID 1 must not exit, so the process idles until the
// machine is reset from the outside.
func Halt(msg string) {
	halt(linuxSystem{}, os.Stderr, msg)
}
