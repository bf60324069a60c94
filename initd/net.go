// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

const loopbackName = "lo"

// ConfigureLoopback brings the loopback interface up.
func ConfigureLoopback() error {
	link, err := netlink.LinkByName(loopbackName)
	if err != nil {
		return fmt.Errorf("find %s: %w", loopbackName, err)
	}

	if err := netlink.LinkSetUp(link); err != nil {
		return fmt.Errorf("set %s up: %w", loopbackName, err)
	}

	return nil
}
