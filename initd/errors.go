// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPidOne is returned if the process is expected to be run as
	// PID 1 but is not.
	ErrNotPidOne = errors.New("process does not have PID 1")

	// ErrShellUnavailable is returned if the shell could not be started
	// and all retries are used up.
	ErrShellUnavailable = errors.New("shell cannot be started")

	// ErrExitPolicyInvalid is returned if an exit policy is unknown.
	ErrExitPolicyInvalid = errors.New("unknown exit policy")
)

// OptionalMountError is a collection of errors that occurred for mount
// points that may fail.
type OptionalMountError []error

func (e OptionalMountError) Error() string {
	return fmt.Sprintf("optional mount errors: %q", []error(e))
}

func (OptionalMountError) Is(other error) bool {
	_, ok := other.(OptionalMountError)
	return ok
}

func (e OptionalMountError) Unwrap() []error {
	return e
}
