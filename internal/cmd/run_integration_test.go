// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build integration

package cmd_test

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibis-os/ibis/internal/cmd"
)

var (
	kernelPath    = "/kernels/vmlinuz"
	initramfsPath = "/initramfs/ibis.img"
	verbose       bool
)

func init() {
	flag.StringVar(
		&kernelPath,
		"ibis.kernel",
		kernelPath,
		"path of the test kernel",
	)
	flag.StringVar(
		&initramfsPath,
		"ibis.initramfs",
		initramfsPath,
		"path of the test initramfs archive",
	)
	flag.BoolVar(
		&verbose,
		"ibis.verbose",
		verbose,
		"enable verbose guest kernel output",
	)
}

func TestIntegrationBoot(t *testing.T) {
	tests := []struct {
		name             string
		args             []string
		stdin            string
		expectedExitCode int
		expectedStdOut   string
	}{
		{
			name:           "boots to shell and powers off on exit",
			stdin:          "exit\n",
			expectedStdOut: "> ",
		},
		{
			name:           "runs commands before exiting",
			stdin:          "echo ibis-was-here\nexit\n",
			expectedStdOut: "ibis-was-here",
		},
		{
			name:           "verbose kernel output",
			args:           []string{"-verbose"},
			stdin:          "exit\n",
			expectedStdOut: "Linux version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(
				context.Background(),
				2*time.Minute,
			)
			defer cancel()

			args := []string{
				"-kernel", kernelPath,
				"-initramfs", initramfsPath,
				"-memory", "128",
			}
			if verbose {
				args = append(args, "-verbose")
			}

			args = append(args, tt.args...)

			var stdOut, stdErr bytes.Buffer

			cfg := cmd.IO{
				Stdin:  strings.NewReader(tt.stdin),
				Stdout: &stdOut,
				Stderr: &stdErr,
			}

			exitCode := cmd.Run(ctx, args, cfg)

			if stdErr.Len() > 0 {
				t.Log("stderr:", stdErr.String())
			}

			require.Equal(t, tt.expectedExitCode, exitCode, "exit code")
			assert.Contains(t, stdOut.String(), tt.expectedStdOut, "stdout")
		})
	}
}
