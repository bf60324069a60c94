// SPDX-FileCopyrightText: 2026 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// shutdownNotice is printed before processes are signaled.
const shutdownNotice = "Terminating all processes"

// shutdown runs the shutdown sequence: signal all processes, flush file
// system buffers, power off.
//
// A failed signal broadcast produces a diagnostic but does not stop the
// sequence. The sync must have happened before the power-off request,
// otherwise buffered writes are lost. An error is only returned if the
// kernel rejects the power-off request itself.
func shutdown(sys system, out, errOut io.Writer) error {
	fmt.Fprintln(out, shutdownNotice)

	if err := sys.signalAll(unix.SIGTERM); err != nil {
		printError(errOut, fmt.Errorf("terminate processes: %w", err))
	}

	sys.sync()

	if err := sys.powerOff(); err != nil {
		return fmt.Errorf("power off: %w", err)
	}

	return nil
}

// Shutdown terminates all processes, flushes file system buffers and
// powers the system off.
//
// It does not return. If the kernel rejects the power-off request, the
// process stays in a terminal idle state.
func Shutdown() {
	sys := linuxSystem{}

	if err := shutdown(sys, os.Stdout, os.Stderr); err != nil {
		printError(os.Stderr, err)
		halt(sys, os.Stderr, msgShutdownFailed)
	}
}
