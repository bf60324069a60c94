// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibis-os/ibis/initd"
)

func TestOptionalMountError_Is(t *testing.T) {
	tests := []struct {
		name   string
		other  error
		assert assert.BoolAssertionFunc
	}{
		{
			name:   "nil",
			assert: assert.False,
		},
		{
			name:   "same",
			other:  initd.OptionalMountError{assert.AnError},
			assert: assert.True,
		},
		{
			name:   "other",
			other:  assert.AnError,
			assert: assert.False,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := initd.OptionalMountError{}
			tt.assert(t, err.Is(tt.other))
		})
	}
}

func TestOptionalMountError_Unwrap(t *testing.T) {
	err := initd.OptionalMountError{assert.AnError}
	assert.Equal(t, []error{assert.AnError}, err.Unwrap())
}

func TestOptionalMountError_As(t *testing.T) {
	wrapped := errors.Join(initd.OptionalMountError{assert.AnError})

	var mountErr initd.OptionalMountError

	assert.ErrorAs(t, wrapped, &mountErr)
	assert.ErrorIs(t, wrapped, assert.AnError)
}
