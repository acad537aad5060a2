// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/criloz/primalrpc/internal/event"
)

func TestIsTerminal(t *testing.T) {
	terminals := []event.Tag{event.String, event.U32, event.EnumVariantName}
	for _, tag := range terminals {
		assert.True(t, tag.IsTerminal(), tag.String())
		assert.Empty(t, tag.Pattern())
	}

	branches := []event.Tag{event.Shape, event.ElementaryEnum, event.EnumVariantUnit, event.Field}
	for _, tag := range branches {
		assert.False(t, tag.IsTerminal(), tag.String())
		assert.NotEmpty(t, tag.Pattern())
	}
}

func TestByNameRoundTrip(t *testing.T) {
	for _, tag := range []event.Tag{
		event.String, event.U32, event.EnumVariantName, event.CompilerIdentifier,
		event.ShapeName, event.ElementaryEnum, event.EnumVariantUnit,
	} {
		got, ok := event.ByName(tag.String())
		assert.True(t, ok)
		assert.Equal(t, tag, got)
	}
}

func TestByNameCaseInsensitive(t *testing.T) {
	got, ok := event.ByName("shapename")
	assert.True(t, ok)
	assert.Equal(t, event.ShapeName, got)
}

func TestByNameUnknown(t *testing.T) {
	_, ok := event.ByName("NotAThing")
	assert.False(t, ok)
}

func TestUnknownTagStringsAsUnknown(t *testing.T) {
	var tag event.Tag = 999
	assert.Equal(t, "Unknown", tag.String())
}
