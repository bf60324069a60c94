// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultBanner is the compiled-in boot banner. It is always available
// and used whenever no custom banner can be read.
const DefaultBanner = ` _____ _     _
|_   _| |   (_)
  | | | |__  _ ___
  | | | '_ \| / __|
 _| |_| |_) | \__ \
 \___/|_.__/|_|___/`

// Greeting is printed right after the banner.
const Greeting = "Welcome to Ibis!"

// BannerFunc resolves the banner text to display during boot. It must
// always return a non-empty string.
type BannerFunc func() string

// StaticBanner returns a [BannerFunc] that always resolves to the given
// banner.
func StaticBanner(banner string) BannerFunc {
	return func() string {
		return banner
	}
}

// FileBanner returns a [BannerFunc] that resolves to the content of the
// file at the given path.
//
// If the file cannot be read or is empty, it resolves to the fallback
// instead. The boot flow must not be disturbed by a missing or broken
// banner file, so there is no error to handle.
func FileBanner(path, fallback string) BannerFunc {
	return func() string {
		banner, err := os.ReadFile(path)
		if err != nil || len(banner) == 0 {
			return fallback
		}

		return string(banner)
	}
}

// printBanner writes the greeting line and the banner.
func printBanner(dst io.Writer, banner string) {
	if !strings.HasSuffix(banner, "\n") {
		banner += "\n"
	}

	fmt.Fprintln(dst, Greeting)
	fmt.Fprint(dst, banner)
}
