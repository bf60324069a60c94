// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"fmt"
	"os"
)

// FSType is a file system type.
type FSType string

// Virtual file system types the system depends on.
const (
	FSTypeDevTmp FSType = "devtmpfs"
	FSTypeProc   FSType = "proc"
	FSTypeSys    FSType = "sysfs"
	FSTypeTmp    FSType = "tmpfs"

	defaultDirMode = 0o755
)

// EssentialMountPoints returns the virtual file systems a usable
// interactive system requires: device nodes, process and kernel
// introspection and writable scratch space.
func EssentialMountPoints() MountPoints {
	return MountPoints{
		"/dev":  {FSType: FSTypeDevTmp},
		"/proc": {FSType: FSTypeProc},
		"/run":  {FSType: FSTypeTmp},
		"/sys":  {FSType: FSTypeSys},
		"/tmp":  {FSType: FSTypeTmp},
	}
}

// MountOptions contains parameters for a mount point.
type MountOptions struct {
	// FSType is the file system type. It must be set to an available
	// [FSType].
	FSType FSType

	// Source is the source device to mount. Can be empty for all the
	// special file system types. If empty it is set to the string of the
	// type.
	Source string

	// MayFail determines if the mount operation may fail. If set to
	// true, a mount error does not fail a [MountAll] operation.
	MayFail bool
}

// MountPoints is a collection of mount points by path.
type MountPoints map[string]MountOptions

// Mount mounts the file system of [FSType] at the given path.
//
// If path does not exist, it is created. An error is returned if this or
// the mount syscall fails.
func Mount(path string, opts MountOptions) error {
	err := os.MkdirAll(path, defaultDirMode)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}

	return mount(path, opts.Source, string(opts.FSType))
}

// MountAll mounts the given set of file systems.
//
// The mounts are executed in lexicographic order of the paths. If only
// optional mount points failed, it returns an [OptionalMountError] with
// all errors.
func MountAll(mountPoints MountPoints) error {
	var optionalErrs OptionalMountError

	for path, opts := range sortedMap(mountPoints) {
		if err := Mount(path, opts); err != nil {
			if !opts.MayFail {
				return err
			}

			optionalErrs = append(optionalErrs, err)
		}
	}

	if optionalErrs != nil {
		return optionalErrs
	}

	return nil
}
