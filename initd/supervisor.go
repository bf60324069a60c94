// SPDX-FileCopyrightText: 2026 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// supervise starts the shell and waits for it to terminate.
//
// A failed start is retried up to cfg.SpawnRetries times with
// cfg.SpawnRetryDelay between attempts. Once the retries are used up it
// returns [ErrShellUnavailable]. The retry budget resets with every
// successful start.
//
// A shell that terminated on its own is handled according to
// cfg.OnExit. Failure to wait for a running shell ends supervision, as
// the child state is unknown from that point on.
func supervise(sys system, cfg ShellConfig, errOut io.Writer) error {
	failed := uint(0)

	for {
		proc, err := sys.startShell(cfg.Path)
		if err != nil {
			failed++
			printError(errOut, fmt.Errorf("start shell %s: %w", cfg.Path, err))

			if failed > cfg.SpawnRetries {
				return fmt.Errorf("%w: %s", ErrShellUnavailable, cfg.Path)
			}

			sys.sleep(cfg.SpawnRetryDelay)

			continue
		}

		failed = 0

		err = proc.Wait()
		if err != nil {
			// The shell's own exit status does not matter. Only failure
			// to observe the child at all is an error.
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return fmt.Errorf("wait for shell: %w", err)
			}
		}

		if cfg.OnExit != ExitPolicyRespawn {
			return nil
		}
	}
}
