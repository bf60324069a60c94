// SPDX-FileCopyrightText: 2026 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	oneShot := ShellConfig{
		Path:   "/ibish",
		OnExit: ExitPolicyPoweroff,
	}

	tests := []struct {
		name           string
		sys            *fakeSystem
		cfg            Config
		expectedErr    error
		expectedCalls  []string
		expectedOut    string
		errOutContains []string
	}{
		{
			name:        "refuses without pid 1",
			sys:         &fakeSystem{pidNum: 2},
			cfg:         Config{Shell: oneShot},
			expectedErr: ErrNotPidOne,
		},
		{
			name: "boots and powers off",
			sys:  &fakeSystem{pidNum: 1, startErrs: []error{nil}},
			cfg: Config{
				Banner: StaticBanner("*art*"),
				Shell:  oneShot,
			},
			expectedCalls: []string{
				"start /ibish", "wait",
				"signal 15", "sync", "poweroff",
			},
			expectedOut: Greeting + "\n*art*\n" + shutdownNotice + "\n",
		},
		{
			name: "uses compiled-in banner without one configured",
			sys:  &fakeSystem{pidNum: 1, startErrs: []error{nil}},
			cfg:  Config{Shell: oneShot},
			expectedCalls: []string{
				"start /ibish", "wait",
				"signal 15", "sync", "poweroff",
			},
			expectedOut: Greeting + "\n" + DefaultBanner + "\n" +
				shutdownNotice + "\n",
		},
		{
			name: "shuts down without banner when setup fails",
			sys:  &fakeSystem{pidNum: 1},
			cfg: Config{
				Banner: StaticBanner("*art*"),
				Env:    EnvVars{"": "broken"},
				Shell:  oneShot,
			},
			expectedCalls:  []string{"signal 15", "sync", "poweroff"},
			expectedOut:    shutdownNotice + "\n",
			errOutContains: []string{"Error: setup: "},
		},
		{
			name: "shuts down when shell never starts",
			sys:  &fakeSystem{pidNum: 1},
			cfg: Config{
				Banner: StaticBanner("*art*"),
				Shell:  ShellConfig{Path: "/ibish"},
			},
			expectedCalls: []string{
				"start /ibish",
				"signal 15", "sync", "poweroff",
			},
			expectedOut: Greeting + "\n*art*\n" + shutdownNotice + "\n",
			errOutContains: []string{
				"Error: start shell /ibish: ",
				"Error: shell cannot be started: /ibish",
			},
		},
		{
			name: "parks when power off fails",
			sys: &fakeSystem{
				pidNum:      1,
				startErrs:   []error{nil},
				powerOffErr: assert.AnError,
			},
			cfg: Config{
				Banner: StaticBanner("*art*"),
				Shell:  oneShot,
			},
			expectedCalls: []string{
				"start /ibish", "wait",
				"signal 15", "sync", "poweroff",
				"idle",
			},
			expectedOut: Greeting + "\n*art*\n" + shutdownNotice + "\n",
			errOutContains: []string{
				"Error: power off: ",
				"Please report a bug and reboot your system.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer

			err := run(tt.sys, tt.cfg, &out, &errOut)
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Equal(t, tt.expectedCalls, tt.sys.calls, "calls")
			assert.Equal(t, tt.expectedOut, out.String(), "output")

			for _, part := range tt.errOutContains {
				assert.Contains(t, errOut.String(), part)
			}

			if len(tt.errOutContains) == 0 {
				assert.Empty(t, errOut.String(), "diagnostics")
			}
		})
	}
}
