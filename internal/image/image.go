// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package image inspects initramfs archives before they are handed to
// QEMU. It reads plain and gzip compressed CPIO archives. Building
// archives is not in scope of this package.
package image

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"

	"github.com/cavaliergopher/cpio"
)

// initNames are the archive member names the kernel resolves as the
// init program.
var initNames = []string{"init", "./init", "/init"}

// Entry describes one archive member.
type Entry struct {
	Name string
	Mode fs.FileMode
	Size int64
}

// newReader returns a CPIO reader for the archive, transparently
// decompressing gzip compressed archives.
func newReader(r io.Reader) (*cpio.Reader, error) {
	buffered := bufio.NewReader(r)

	magic, err := buffered.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}

	if magic[0] == 0x1f && magic[1] == 0x8b {
		gzReader, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}

		return cpio.NewReader(gzReader), nil
	}

	return cpio.NewReader(buffered), nil
}

// List returns all members of the archive in order of appearance.
func List(r io.Reader) ([]Entry, error) {
	reader, err := newReader(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}

		entries = append(entries, Entry{
			Name: hdr.Name,
			Mode: hdr.FileInfo().Mode(),
			Size: hdr.Size,
		})
	}

	return entries, nil
}

// CheckInit verifies that the archive carries an init program the
// kernel can execute. A regular file must have an executable bit set.
// Symbolic links are accepted without resolving the target.
func CheckInit(r io.Reader) error {
	reader, err := newReader(r)
	if err != nil {
		return err
	}

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		if !slices.Contains(initNames, hdr.Name) {
			continue
		}

		mode := hdr.FileInfo().Mode()

		switch {
		case mode&fs.ModeSymlink != 0:
			return nil
		case mode.IsRegular() && mode&0o111 != 0:
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrInitNotExecutable, hdr.Name)
		}
	}

	return ErrNoInit
}
