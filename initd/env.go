// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

// DefaultPath is the initial executable search path for everything
// started from init. exec lookup requires the list to be colon
// separated.
const DefaultPath = "/sbin:/bin"

// EnvVars is a map of environment variable values by name.
type EnvVars map[string]string

// SetEnv sets the given [EnvVars] in the environment.
//
// Variables are set in lexicographic order of the names, so a failure
// always happens at the same variable.
func SetEnv(envVars EnvVars) error {
	for key, value := range sortedMap(envVars) {
		if err := setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}
