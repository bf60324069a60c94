// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/ibis-os/ibis/internal/image"
	"github.com/ibis-os/ibis/internal/qemu"
)

const localConfigFile = ".ibis-args"

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return flags, nil
}

func newQemuCommand(flags *flags) (*qemu.Command, error) {
	qemuSpec := qemu.CommandSpec{
		Executable:    flags.QemuBin,
		Kernel:        string(flags.KernelPath),
		Initramfs:     string(flags.InitramfsPath),
		Machine:       flags.Machine,
		CPU:           flags.CPUType,
		SMP:           flags.NumCPU,
		Memory:        flags.Memory,
		TransportType: flags.TransportType,
		InitArgs:      flags.InitArgs,
		NoKVM:         flags.NoKVM,
		Verbose:       flags.GuestVerbose,
	}

	err := qemuSpec.AddDefaultsFor(flags.Arch)
	if err != nil {
		return nil, fmt.Errorf("qemu defaults: %w", err)
	}

	cmd, err := qemu.NewCommand(qemuSpec)
	if err != nil {
		return nil, fmt.Errorf("new qemu command: %w", err)
	}

	return cmd, nil
}

func inspectInitramfs(output io.Writer, path string) error {
	archive, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open initramfs: %w", err)
	}
	defer archive.Close()

	entries, err := image.List(archive)
	if err != nil {
		return fmt.Errorf("list initramfs: %w", err)
	}

	for _, entry := range entries {
		fmt.Fprintf(output, "%s %8d %s\n", entry.Mode, entry.Size, entry.Name)
	}

	return nil
}

// checkInitramfs fails fast on the host for archives the guest kernel would
// panic on.
func checkInitramfs(path string) error {
	archive, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open initramfs: %w", err)
	}
	defer archive.Close()

	err = image.CheckInit(archive)
	if err != nil {
		return fmt.Errorf("check initramfs: %w", err)
	}

	return nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	err := flags.validateFilePaths()
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if flags.Inspect {
		return inspectInitramfs(cfg.Stdout, string(flags.InitramfsPath))
	}

	err = checkInitramfs(string(flags.InitramfsPath))
	if err != nil {
		return err
	}

	cmd, err := newQemuCommand(flags)
	if err != nil {
		return err
	}

	slog.Debug("QEMU command",
		slog.String("command", cmd.String()))

	err = cmd.Run(ctx, cfg.Stdin, cfg.Stdout, cfg.Stderr)
	if err != nil {
		return fmt.Errorf("qemu: %w", err)
	}

	return nil
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help or version output was requested. So
	// exit without error in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// parseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	slog.Error(err.Error())
	return -1
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	log.SetOutput(cfg.Stderr)
	log.SetFlags(log.Lmicroseconds)
	log.SetPrefix("IBIS: ")

	flags, err := newFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug)

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}
