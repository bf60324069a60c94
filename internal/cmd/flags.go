// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/ibis-os/ibis/internal/qemu"
	"github.com/ibis-os/ibis/internal/sys"
)

const (
	name = "ibis"

	cpuDefault = "max"

	memDefault = 256
	memMin     = 128
	memMax     = 16384

	smpDefault = 1
	smpMin     = 1
	smpMax     = 16

	usageMessage = `Usage of 'ibis':
    ibis -kernel=<file> -initramfs=<file> [flags...] [initargs...]

Boot an Ibis machine with an interactive console on the current terminal:
	ibis -kernel=bzImage -initramfs=ibis.img

Pass arguments to the guest's init program:
	ibis -kernel=bzImage -initramfs=ibis.img -- rescue

List the initramfs contents without booting:
	ibis -initramfs=ibis.img -inspect

All ibis flags can also be provided via environment variable IBIS_ARGS:
	IBIS_ARGS="-memory=512" ibis -kernel=bzImage -initramfs=ibis.img

All ibis flags can also be provided via file ./.ibis-args, with one
argument per line.
`
)

type flags struct {
	KernelPath    FilePath
	InitramfsPath FilePath
	QemuBin       string
	Machine       string
	CPUType       string
	Memory        uint64
	NumCPU        uint64
	TransportType qemu.TransportType
	Arch          sys.Arch
	InitArgs      []string

	NoKVM        bool
	GuestVerbose bool
	Inspect      bool
	Debug        bool
	Version      bool
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	flags := &flags{
		CPUType: cpuDefault,
		Memory:  memDefault,
		NumCPU:  smpDefault,
		Arch:    sys.Native,
	}

	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), usageMessage)
		fmt.Fprintln(flagSet.Output(), "\nFlags:")
		flagSet.PrintDefaults()
	}

	flagSet.Var(
		&flags.KernelPath,
		"kernel",
		"path to the kernel to boot",
	)

	flagSet.Var(
		&flags.InitramfsPath,
		"initramfs",
		"path to the initramfs archive to boot",
	)

	flagSet.StringVar(
		&flags.QemuBin,
		"qemu-bin",
		flags.QemuBin,
		"QEMU binary to use (default depends on arch: qemu-system-*)",
	)

	flagSet.StringVar(
		&flags.Machine,
		"machine",
		flags.Machine,
		"QEMU machine type to use (default depends on arch)",
	)

	flagSet.StringVar(
		&flags.CPUType,
		"cpu",
		flags.CPUType,
		"QEMU CPU type to use",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &flags.Memory,
			Lower: memMin,
			Upper: memMax,
		},
		"memory",
		"memory (in MB) for the QEMU VM",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &flags.NumCPU,
			Lower: smpMin,
			Upper: smpMax,
		},
		"smp",
		"number of CPUs for the QEMU VM",
	)

	flagSet.TextVar(
		&flags.TransportType,
		"transport",
		&flags.TransportType,
		"io transport type: isa, pci, mmio (default depends on arch)",
	)

	flagSet.TextVar(
		&flags.Arch,
		"arch",
		flags.Arch,
		"guest architecture: amd64, arm64, riscv64",
	)

	flagSet.BoolVar(
		&flags.NoKVM,
		"nokvm",
		flags.NoKVM,
		"disable hardware acceleration (default is enabled if present and "+
			"the arch matches the host)",
	)

	flagSet.BoolVar(
		&flags.GuestVerbose,
		"verbose",
		flags.GuestVerbose,
		"enable verbose guest kernel output",
	)

	flagSet.BoolVar(
		&flags.Inspect,
		"inspect",
		flags.Inspect,
		"list the initramfs contents and exit without booting",
	)

	flagSet.BoolVar(
		&flags.Debug,
		"debug",
		flags.Debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&flags.Version,
		"version",
		flags.Version,
		"show version and exit",
	)

	// fail fails like flag does. It prints the error first and then usage.
	fail := func(msg string, err error) error {
		err = &ParseArgsError{msg: msg, err: err}
		fmt.Fprintln(flagSet.Output(), err.Error())

		flagSet.Usage()

		return err
	}

	// Parses arguments up to the first one that is not prefixed with a "-"
	// or is "--".
	err := flagSet.Parse(args)
	if err != nil {
		return nil, &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if flags.Version {
		err := printVersionInformation(flagSet.Output())
		return nil, &ParseArgsError{msg: "version requested", err: err}
	}

	if flags.InitramfsPath == "" {
		return nil, fail("no initramfs given (use -initramfs)", nil)
	}

	if !flags.Inspect && flags.KernelPath == "" {
		return nil, fail("no kernel given (use -kernel)", nil)
	}

	// All positional arguments are passed to the guest's init program.
	flags.InitArgs = flagSet.Args()

	return flags, nil
}

func (f *flags) validateFilePaths() error {
	err := ValidateFilePath(string(f.InitramfsPath))
	if err != nil {
		return fmt.Errorf("initramfs file: %w", err)
	}

	if f.Inspect {
		return nil
	}

	err = ValidateFilePath(string(f.KernelPath))
	if err != nil {
		return fmt.Errorf("kernel file: %w", err)
	}

	return nil
}

func printVersionInformation(output io.Writer) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(output, "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}
