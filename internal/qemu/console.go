// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
)

var (
	panicRE = regexp.MustCompile(`^\[[0-9. ]+\] Kernel panic - not syncing: `)
	oomRE   = regexp.MustCompile(`^\[[0-9. ]+\] Out of memory: `)
)

// maxScanLen limits the bytes kept per line for pattern matching.
// Kernel messages fit well within this. Longer lines are matched on
// their prefix only.
const maxScanLen = 4096

// consoleWatcher forwards the guest console stream and watches it for
// kernel error messages.
//
// The stream is forwarded byte for byte, without waiting for complete
// lines. The guest's shell prompt does not end with a newline, so line
// buffering would hold it back.
type consoleWatcher struct {
	dst      io.Writer
	line     []byte
	guestErr error
}

func newConsoleWatcher(dst io.Writer) *consoleWatcher {
	return &consoleWatcher{dst: dst}
}

// Write implements [io.Writer].
func (w *consoleWatcher) Write(p []byte) (int, error) {
	for data := p; len(data) > 0; {
		idx := bytes.IndexByte(data, '\n')
		if idx == -1 {
			w.appendLine(data)
			break
		}

		w.appendLine(data[:idx])
		w.scanLine()

		w.line = w.line[:0]
		data = data[idx+1:]
	}

	n, err := w.dst.Write(p)
	if err != nil {
		return n, fmt.Errorf("write: %w", err)
	}

	return n, nil
}

func (w *consoleWatcher) appendLine(data []byte) {
	free := maxScanLen - len(w.line)
	if free <= 0 {
		return
	}

	if len(data) > free {
		data = data[:free]
	}

	w.line = append(w.line, data...)
}

// scanLine matches the current line against the known kernel error
// messages. The first match is kept, as it names the root cause.
func (w *consoleWatcher) scanLine() {
	if w.guestErr != nil {
		return
	}

	switch {
	case oomRE.Match(w.line):
		w.guestErr = ErrGuestOom
	case panicRE.Match(w.line):
		w.guestErr = ErrGuestPanic
	}
}

// guestError returns the guest failure found in the console stream, if
// any. It must not be called before the stream is complete.
func (w *consoleWatcher) guestError() error {
	return w.guestErr
}
