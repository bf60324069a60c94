// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import "errors"

var (
	// ErrNoInit is returned if an archive does not carry an init
	// program at any of the well known member names.
	ErrNoInit = errors.New("no init program in archive")

	// ErrInitNotExecutable is returned if the init member of an archive
	// is not an executable file.
	ErrInitNotExecutable = errors.New("init program is not executable")
)
