// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibis-os/ibis/internal/image"
)

type member struct {
	name string
	mode cpio.FileMode
	body string
}

func buildArchive(t *testing.T, members []member) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	writer := cpio.NewWriter(&buf)

	for _, m := range members {
		hdr := &cpio.Header{
			Name: m.name,
			Mode: m.mode,
			Size: int64(len(m.body)),
		}

		err := writer.WriteHeader(hdr)
		require.NoError(t, err)

		_, err = writer.Write([]byte(m.body))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return &buf
}

func compress(t *testing.T, archive *bytes.Buffer) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	gzWriter := gzip.NewWriter(&buf)

	_, err := io.Copy(gzWriter, archive)
	require.NoError(t, err)
	require.NoError(t, gzWriter.Close())

	return &buf
}

func TestList(t *testing.T) {
	archive := buildArchive(t, []member{
		{name: "./bin", mode: cpio.TypeDir | 0o755},
		{name: "./init", mode: cpio.TypeReg | 0o755, body: "ibis init"},
		{name: "./bin/ibish", mode: cpio.TypeReg | 0o755, body: "ibis shell"},
		{name: "./etc/init.toml", mode: cpio.TypeReg | 0o644, body: "x = 1\n"},
	})

	expected := []image.Entry{
		{Name: "./bin", Mode: fs.ModeDir | 0o755, Size: 0},
		{Name: "./init", Mode: 0o755, Size: 9},
		{Name: "./bin/ibish", Mode: 0o755, Size: 10},
		{Name: "./etc/init.toml", Mode: 0o644, Size: 6},
	}

	t.Run("plain", func(t *testing.T) {
		entries, err := image.List(bytes.NewReader(archive.Bytes()))
		require.NoError(t, err)

		assert.Equal(t, expected, entries)
	})

	t.Run("gzip compressed", func(t *testing.T) {
		compressed := compress(t, bytes.NewBuffer(archive.Bytes()))

		entries, err := image.List(compressed)
		require.NoError(t, err)

		assert.Equal(t, expected, entries)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := image.List(strings.NewReader(""))
		require.Error(t, err)
	})

	t.Run("not an archive", func(t *testing.T) {
		_, err := image.List(strings.NewReader("certainly not cpio data"))
		require.Error(t, err)
	})
}

func TestCheckInit(t *testing.T) {
	tests := []struct {
		name        string
		members     []member
		compressed  bool
		expectedErr error
	}{
		{
			name: "executable init",
			members: []member{
				{name: "./init", mode: cpio.TypeReg | 0o755, body: "init"},
			},
		},
		{
			name: "plain init name",
			members: []member{
				{name: "init", mode: cpio.TypeReg | 0o700, body: "init"},
			},
		},
		{
			name: "absolute init name",
			members: []member{
				{name: "/init", mode: cpio.TypeReg | 0o755, body: "init"},
			},
		},
		{
			name: "symlinked init",
			members: []member{
				{
					name: "init",
					mode: cpio.TypeSymlink | cpio.ModePerm,
					body: "bin/ibis-init",
				},
			},
		},
		{
			name: "in compressed archive",
			members: []member{
				{name: "./init", mode: cpio.TypeReg | 0o755, body: "init"},
			},
			compressed: true,
		},
		{
			name: "init not executable",
			members: []member{
				{name: "./init", mode: cpio.TypeReg | 0o644, body: "init"},
			},
			expectedErr: image.ErrInitNotExecutable,
		},
		{
			name: "init is a directory",
			members: []member{
				{name: "init", mode: cpio.TypeDir | 0o755},
			},
			expectedErr: image.ErrInitNotExecutable,
		},
		{
			name: "no init member",
			members: []member{
				{name: "./bin/ibish", mode: cpio.TypeReg | 0o755, body: "sh"},
			},
			expectedErr: image.ErrNoInit,
		},
		{
			name:        "empty archive",
			expectedErr: image.ErrNoInit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := buildArchive(t, tt.members)
			if tt.compressed {
				archive = compress(t, archive)
			}

			err := image.CheckInit(archive)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
