// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Init is the first process of an Ibis system. The kernel starts it as
// PID 1 and it must never terminate. It sets up the system, supervises
// the interactive shell and powers the machine off once the shell is
// done.
package main

import (
	"fmt"
	"os"

	"github.com/ibis-os/ibis/initd"
)

func main() {
	cfg, err := initd.LoadConfig(initd.DefaultConfigPath)
	if err != nil {
		// The returned config still holds usable defaults.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	configureBanner(&cfg)

	err = initd.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
