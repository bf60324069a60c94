// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !minimal

package main

import "github.com/ibis-os/ibis/initd"

// configureBanner keeps the banner resolution from the configuration.
func configureBanner(_ *initd.Config) {}
