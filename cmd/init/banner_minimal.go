// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build minimal

package main

import "github.com/ibis-os/ibis/initd"

// configureBanner pins the compiled-in banner. Minimal builds do not
// read banner files.
func configureBanner(cfg *initd.Config) {
	cfg.Banner = initd.StaticBanner(initd.DefaultBanner)
}
