// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ibis-os/ibis/internal/sys"
)

const (
	machineTypeMicroVM = "microvm"
	machineTypePC      = "pc"
	machineTypeQ35     = "q35"
	machineTypeVirt    = "virt"
)

// stdioConsoleID is the chardev id of the interactive guest console.
const stdioConsoleID = "con0"

// CommandSpec defines the parameters for a [Command].
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the kernel to boot. The kernel must have support for the
	// configured transport type compiled in.
	Kernel string

	// Path to the initramfs to boot with. It must carry an init program
	// at one of the well known paths.
	Initramfs string

	// QEMU machine type to use. Depends on the QEMU binary used.
	Machine string

	// CPU type to use. Depends on machine type and QEMU binary used.
	CPU string

	// Number of CPUs for the guest.
	SMP uint64

	// Memory for the machine in MB.
	Memory uint64

	// Disable KVM support.
	NoKVM bool

	// Transport type for IO. This depends on machine type and the kernel.
	// TransportTypeISA should always work for amd64. ARM and RISC-V type
	// virt do not support ISA type at all.
	TransportType TransportType

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the
	// command itself or an error will be returned by [NewCommand].
	ExtraArgs []Argument

	// Arguments to pass to the guest's init program.
	InitArgs []string

	// Increase guest kernel logging.
	Verbose bool
}

// AddDefaultsFor adds architecture specific default values to the given
// spec if the fields are not set yet.
func (s *CommandSpec) AddDefaultsFor(arch sys.Arch) error {
	var (
		executable    string
		machine       string
		transportType TransportType
	)

	switch arch {
	case sys.AMD64:
		executable = "qemu-system-x86_64"
		machine = machineTypeQ35
		transportType = TransportTypePCI
	case sys.ARM64:
		executable = "qemu-system-aarch64"
		machine = machineTypeVirt
		transportType = TransportTypeMMIO
	case sys.RISCV64:
		executable = "qemu-system-riscv64"
		machine = machineTypeVirt
		transportType = TransportTypeMMIO
	default:
		return sys.ErrArchNotSupported
	}

	if s.Executable == "" {
		s.Executable = executable
	}

	if s.Machine == "" {
		s.Machine = machine
	}

	if s.TransportType == "" {
		s.TransportType = transportType
	}

	if !s.NoKVM {
		s.NoKVM = !arch.KVMAvailable()
	}

	return nil
}

// Validate checks for known incompatibilities.
func (s *CommandSpec) Validate() error {
	if !s.TransportType.isKnown() {
		return &ArgumentError{
			"unknown transport type: " + s.TransportType.String(),
		}
	}

	switch s.Machine {
	case machineTypeMicroVM:
		if s.TransportType == TransportTypePCI {
			return &ArgumentError{"microvm does not support pci transport"}
		}
	case machineTypeVirt:
		if s.TransportType == TransportTypeISA {
			return &ArgumentError{"virt requires virtio-mmio"}
		}
	case machineTypeQ35, machineTypePC:
		if s.TransportType == TransportTypeMMIO {
			return &ArgumentError{
				s.Machine + " does not work with virtio-mmio",
			}
		}
	}

	return nil
}

// arguments compiles the argument list for the QEMU command.
func (s *CommandSpec) arguments() []Argument {
	args := []Argument{
		UniqueArg("kernel", s.Kernel),
		UniqueArg("initrd", s.Initramfs),
	}

	if s.Machine != "" {
		args = append(args, UniqueArg("machine", s.Machine))
	}

	if s.CPU != "" {
		args = append(args, UniqueArg("cpu", s.CPU))
	}

	if s.SMP != 0 {
		args = append(args, UniqueArg("smp", strconv.FormatUint(s.SMP, 10)))
	}

	if s.Memory != 0 {
		args = append(args, UniqueArg("m", strconv.FormatUint(s.Memory, 10)))
	}

	if !s.NoKVM {
		args = append(args, UniqueArg("enable-kvm"))
	}

	args = s.appendConsoleArgs(args)

	args = append(args,
		// Disable video output.
		UniqueArg("display", "none"),
		// Disable QEMU monitor.
		UniqueArg("monitor", "none"),
		// Guest must not reboot. A panic reboot terminates QEMU instead.
		UniqueArg("no-reboot"),
		// Disable all default devices.
		UniqueArg("nodefaults"),
		// Do not load any user config files.
		UniqueArg("no-user-config"),
	)

	args = append(args, s.ExtraArgs...)

	kernelCmdline := strings.Join(s.kernelCmdlineArgs(), " ")
	args = append(args, RepeatableArg("append", kernelCmdline))

	return args
}

// appendConsoleArgs attaches the guest's default console to the
// caller's standard streams.
//
// The terminal signal handling is left to the guest, so interrupts
// reach the Ibis shell instead of terminating QEMU.
func (s *CommandSpec) appendConsoleArgs(args []Argument) []Argument {
	chardevOpts := []string{
		"stdio",
		"id=" + stdioConsoleID,
		"signal=off",
	}

	switch s.TransportType {
	case TransportTypeISA:
		args = append(args,
			RepeatableArg("chardev", chardevOpts...),
			RepeatableArg("serial", "chardev:"+stdioConsoleID),
		)
	case TransportTypePCI:
		args = append(args,
			RepeatableArg("device", "virtio-serial-pci,max_ports=8"),
			RepeatableArg("chardev", chardevOpts...),
			RepeatableArg("device", "virtconsole,chardev="+stdioConsoleID),
		)
	case TransportTypeMMIO:
		args = append(args,
			RepeatableArg("device", "virtio-serial-device,max_ports=8"),
			RepeatableArg("chardev", chardevOpts...),
			RepeatableArg("device", "virtconsole,chardev="+stdioConsoleID),
		)
	}

	return args
}

// kernelCmdlineArgs returns the kernel cmdline arguments.
func (s *CommandSpec) kernelCmdlineArgs() []string {
	cmdline := []string{
		"console=" + s.TransportType.ConsoleDeviceName(0),
		// Reboot immediately on panic. Together with the no-reboot flag
		// this terminates QEMU.
		"panic=-1",
	}

	if s.Verbose {
		cmdline = append(cmdline, "debug")
	} else {
		cmdline = append(cmdline, "quiet")
	}

	if len(s.InitArgs) > 0 {
		cmdline = append(cmdline, "--")
		cmdline = append(cmdline, s.InitArgs...)
	}

	return cmdline
}

// Command is a runnable QEMU command.
type Command struct {
	name string
	args []string
}

// NewCommand validates the spec and compiles it into a [Command].
func NewCommand(spec CommandSpec) (*Command, error) {
	err := spec.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	args, err := BuildArgumentStrings(spec.arguments())
	if err != nil {
		return nil, fmt.Errorf("build arguments: %w", err)
	}

	return &Command{
		name: spec.Executable,
		args: args,
	}, nil
}

// String implements [fmt.Stringer].
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Run starts the QEMU command and waits until the guest terminated.
//
// The caller's streams are attached to the guest's console. The console
// output is forwarded unmodified, so the interactive shell works as if
// it ran on a local terminal. Guest failures detected in the console
// output are returned as [CommandError] with the Guest flag set after
// QEMU terminated.
func (c *Command) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = stdin
	cmd.Stderr = stderr

	consoleOut, err := cmd.StdoutPipe()
	if err != nil {
		return &CommandError{Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	err = cmd.Start()
	if err != nil {
		return &CommandError{Err: fmt.Errorf("start: %w", err)}
	}

	watcher := newConsoleWatcher(stdout)

	outputGroup := errgroup.Group{}
	outputGroup.Go(func() error {
		_, err := io.Copy(watcher, consoleOut)
		return err
	})

	// The copy terminates once QEMU closes the stdout pipe, so it must
	// be awaited before [exec.Cmd.Wait] closes the read side.
	outputErr := outputGroup.Wait()

	err = cmd.Wait()
	if err != nil {
		return &CommandError{Err: fmt.Errorf("wait: %w", err)}
	}

	if outputErr != nil {
		return &CommandError{Err: fmt.Errorf("console: %w", outputErr)}
	}

	if guestErr := watcher.guestError(); guestErr != nil {
		return &CommandError{Err: guestErr, Guest: true}
	}

	return nil
}
