// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/criloz/primalrpc/internal/validate"
)

func TestIsEnumVariantName(t *testing.T) {
	cases := []struct {
		name      string
		wantOK    bool
		wantCause validate.VariantNameCause
	}{
		{"Accept", true, validate.CauseNone},
		{"StopImmediately", true, validate.CauseNone},
		{"A", true, validate.CauseNone},
		{"Retry2", true, validate.CauseNone},
		{"", false, validate.CausePattern},
		{"camelCase", false, validate.CausePascalCase},
		{"2Retry", false, validate.CausePattern},
		{"First-Town", false, validate.CausePattern},
		{"Foo:Bar", false, validate.CauseMultipleSegments},
		{"Foo Bar", false, validate.CausePattern},
	}
	for _, tc := range cases {
		ok, cause := validate.IsEnumVariantName(tc.name)
		assert.Equal(t, tc.wantOK, ok, tc.name)
		if !tc.wantOK {
			assert.Equal(t, tc.wantCause, cause, tc.name)
		}
	}
}
