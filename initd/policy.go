// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import "slices"

const (
	// ExitPolicyPoweroff shuts the system down once the shell
	// terminates.
	ExitPolicyPoweroff ExitPolicy = "poweroff"
	// ExitPolicyRespawn starts a new shell once the previous one
	// terminates.
	ExitPolicyRespawn ExitPolicy = "respawn"
)

// ExitPolicy determines what the supervisor does when the shell
// terminates on its own.
type ExitPolicy string

func (p *ExitPolicy) isKnown() bool {
	knownExitPolicies := []ExitPolicy{
		ExitPolicyPoweroff,
		ExitPolicyRespawn,
	}

	return slices.Contains(knownExitPolicies, *p)
}

// String implements [fmt.Stringer].
func (p *ExitPolicy) String() string {
	if !p.isKnown() {
		return ""
	}

	return string(*p)
}

// MarshalText implements [encoding.TextMarshaler].
func (p ExitPolicy) MarshalText() ([]byte, error) {
	s := p.String()
	if s == "" {
		return nil, ErrExitPolicyInvalid
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *ExitPolicy) UnmarshalText(text []byte) error {
	policy := ExitPolicy(text)

	if !policy.isKnown() {
		return ErrExitPolicyInvalid
	}

	*p = policy

	return nil
}
