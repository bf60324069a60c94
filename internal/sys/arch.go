// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"os"
	"runtime"
)

// Arch is a guest machine architecture.
type Arch string

// Supported guest architectures.
const (
	AMD64   Arch = "amd64"
	ARM64   Arch = "arm64"
	RISCV64 Arch = "riscv64"
)

// Native is the architecture of the host. Guests with the same
// architecture can use KVM, if available. Use [Arch.KVMAvailable] to
// check.
const Native Arch = Arch(runtime.GOARCH)

var ErrArchNotSupported = errors.New("architecture not supported")

func (a Arch) String() string {
	return string(a)
}

func (a Arch) IsNative() bool {
	return a == Native
}

// KVMAvailable checks if KVM can accelerate a guest of this architecture
// on this host.
func (a Arch) KVMAvailable() bool {
	if !a.IsNative() {
		return false
	}

	f, err := os.OpenFile("/dev/kvm", os.O_WRONLY, 0)
	if err != nil {
		return false
	}

	_ = f.Close()

	return true
}

// MarshalText implements [encoding.TextMarshaler].
func (a Arch) MarshalText() ([]byte, error) {
	switch a {
	case AMD64, ARM64, RISCV64:
		return []byte(a), nil
	default:
		return nil, ErrArchNotSupported
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Arch) UnmarshalText(text []byte) error {
	arch := Arch(text)

	switch arch {
	case AMD64, ARM64, RISCV64:
		*a = arch
	default:
		return ErrArchNotSupported
	}

	return nil
}
