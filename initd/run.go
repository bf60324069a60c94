// SPDX-FileCopyrightText: 2026 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Run is the entry point for the init process.
//
// It guards the PID 1 identity, sets up the system according to the
// given [Config], prints the boot banner and supervises the interactive
// shell. Once supervision ends, the system is shut down.
//
// If the process is not PID 1, [ErrNotPidOne] is returned before
// anything else happens. In all other cases Run does not return: the
// lifecycle ends in a kernel power-off, or in a terminal idle state if
// the power-off request fails.
func Run(cfg Config) error {
	return run(linuxSystem{}, cfg, os.Stdout, os.Stderr)
}

func run(sys system, cfg Config, out, errOut io.Writer) error {
	if sys.pid() != 1 {
		return ErrNotPidOne
	}

	// From here on every path ends in finish. Setup failures leave the
	// machine in an unknown state, so the shell is not started.
	err := setup(cfg, errOut)
	if err != nil {
		printError(errOut, fmt.Errorf("setup: %w", err))
		return finish(sys, out, errOut)
	}

	banner := cfg.Banner
	if banner == nil {
		banner = StaticBanner(DefaultBanner)
	}

	printBanner(out, banner())

	err = supervise(sys, cfg.Shell, errOut)
	if err != nil {
		printError(errOut, err)
	}

	return finish(sys, out, errOut)
}

// setup applies the system configuration.
func setup(cfg Config, errOut io.Writer) error {
	err := MountAll(cfg.MountPoints)

	var optionalErrs OptionalMountError
	if errors.As(err, &optionalErrs) {
		for _, mountErr := range optionalErrs {
			printError(errOut, fmt.Errorf("optional mount: %w", mountErr))
		}
	} else if err != nil {
		return err
	}

	if cfg.Hostname != "" {
		if err := sethostname(cfg.Hostname); err != nil {
			return err
		}
	}

	if cfg.ConfigureLoopback {
		if err := ConfigureLoopback(); err != nil {
			return err
		}
	}

	return SetEnv(cfg.Env)
}

// finish shuts the system down. If the power-off request fails, the
// process is parked for good.
func finish(sys system, out, errOut io.Writer) error {
	err := shutdown(sys, out, errOut)
	if err != nil {
		printError(errOut, err)
		halt(sys, errOut, msgShutdownFailed)
	}

	return nil
}

func printError(dst io.Writer, err error) {
	fmt.Fprintf(dst, "Error: %v\n", err)
}
