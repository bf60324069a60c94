// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"
)

// system abstracts the process and power control primitives the
// lifecycle is built on.
type system interface {
	pid() int
	startShell(path string) (process, error)
	signalAll(sig unix.Signal) error
	sync()
	powerOff() error
	idle()
	sleep(d time.Duration)
}

// process is a started child that can be waited for. [exec.Cmd]
// satisfies it.
type process interface {
	Wait() error
}

// linuxSystem implements system with the real syscalls.
type linuxSystem struct{}

func (linuxSystem) pid() int {
	return os.Getpid()
}

// startShell starts the shell with the console attached.
func (linuxSystem) startShell(path string) (process, error) {
	cmd := exec.Command(path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}

func (linuxSystem) signalAll(sig unix.Signal) error {
	// PID -1 addresses all processes the caller may signal, which for
	// PID 1 is everything except init itself.
	if err := unix.Kill(-1, sig); err != nil {
		return fmt.Errorf("kill: %w", err)
	}

	return nil
}

func (linuxSystem) sync() {
	unix.Sync()
}

func (linuxSystem) powerOff() error {
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}

	return nil
}

// idle parks the process without consuming CPU. It never returns. PID 1
// must never return to the kernel, so once the lifecycle has no way
// forward the process stays here until the machine is reset.
func (linuxSystem) idle() {
	for {
		_ = unix.Pause()
	}
}

func (linuxSystem) sleep(d time.Duration) {
	time.Sleep(d)
}

func mount(path, source, fsType string) error {
	if source == "" {
		source = fsType
	}

	if err := unix.Mount(source, path, fsType, 0, ""); err != nil {
		return fmt.Errorf("mount %s: %w", path, err)
	}

	return nil
}

func sethostname(name string) error {
	if err := unix.Sethostname([]byte(name)); err != nil {
		return fmt.Errorf("sethostname: %w", err)
	}

	return nil
}

func setenv(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("setenv %s: %w", key, err)
	}

	return nil
}
