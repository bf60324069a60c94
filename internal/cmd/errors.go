// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"flag"
	"fmt"
)

var (
	// ErrHelp is returned when usage or version output was requested.
	ErrHelp = flag.ErrHelp

	// ErrReadBuildInfo is returned when the build info is not available.
	ErrReadBuildInfo = errors.New("failed to read build info")

	// ErrEmptyFilePath is returned for file flags with an empty value.
	ErrEmptyFilePath = errors.New("file path must not be empty")

	// ErrNotRegularFile is returned for file flags that do not point to a
	// regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
