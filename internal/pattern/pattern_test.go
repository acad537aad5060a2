// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criloz/primalrpc/internal/event"
	"github.com/criloz/primalrpc/internal/pattern"
)

func mustParse(t *testing.T, grammar string) *pattern.Pattern {
	t.Helper()
	p, err := pattern.Parse(grammar)
	require.NoError(t, err)
	return p
}

func TestParseTerminalPatternIsEmpty(t *testing.T) {
	p := mustParse(t, event.U32.Pattern())
	assert.Equal(t, 0, p.ChildCount)
	assert.True(t, pattern.Match(p, nil))
}

func TestMatchFixedSequence(t *testing.T) {
	// Shape: CompilerIdentifier EvolutionaryIdentifier ShapeName (? DerivedTrace)
	p := mustParse(t, event.Shape.Pattern())

	assert.True(t, pattern.Match(p, []event.Tag{
		event.CompilerIdentifier, event.EvolutionaryIdentifier, event.ShapeName,
	}))
	assert.True(t, pattern.Match(p, []event.Tag{
		event.CompilerIdentifier, event.EvolutionaryIdentifier, event.ShapeName, event.DerivedTrace,
	}))
	assert.False(t, pattern.Match(p, []event.Tag{
		event.CompilerIdentifier, event.ShapeName,
	}))
	assert.False(t, pattern.Match(p, []event.Tag{
		event.CompilerIdentifier, event.EvolutionaryIdentifier, event.ShapeName, event.DerivedTrace, event.DerivedTrace,
	}))
}

func TestMatchOneOrMore(t *testing.T) {
	// DerivedTrace: (+ CompilerIdentifier)
	p := mustParse(t, event.DerivedTrace.Pattern())

	assert.False(t, pattern.Match(p, nil))
	assert.True(t, pattern.Match(p, []event.Tag{event.CompilerIdentifier}))
	assert.True(t, pattern.Match(p, []event.Tag{event.CompilerIdentifier, event.CompilerIdentifier, event.CompilerIdentifier}))
	assert.False(t, pattern.Match(p, []event.Tag{event.CompilerIdentifier, event.ShapeName}))
}

func TestMatchAlternation(t *testing.T) {
	// EvolutionaryIdentifier: (+ (| U32 Uuid String))
	p := mustParse(t, event.EvolutionaryIdentifier.Pattern())

	assert.True(t, pattern.Match(p, []event.Tag{event.U32}))
	assert.True(t, pattern.Match(p, []event.Tag{event.Uuid}))
	assert.True(t, pattern.Match(p, []event.Tag{event.String, event.String}))
	assert.False(t, pattern.Match(p, []event.Tag{event.ShapeName}))
}

func TestMatchEnumVariantUnit(t *testing.T) {
	p := mustParse(t, event.EnumVariantUnit.Pattern())

	full := []event.Tag{
		event.LocalIdentifier, event.CompilerIdentifier, event.EvolutionaryIdentifier,
		event.EnumVariantName, event.Documentation, event.Tags, event.DerivedTrace,
	}
	assert.True(t, pattern.Match(p, full))

	minimal := []event.Tag{
		event.LocalIdentifier, event.CompilerIdentifier, event.EvolutionaryIdentifier, event.EnumVariantName,
	}
	assert.True(t, pattern.Match(p, minimal))

	assert.False(t, pattern.Match(p, []event.Tag{event.LocalIdentifier, event.CompilerIdentifier}))
}

func TestMatchElementaryEnum(t *testing.T) {
	p := mustParse(t, event.ElementaryEnum.Pattern())

	assert.True(t, pattern.Match(p, []event.Tag{
		event.Shape, event.LocalIdentifier, event.Field,
	}))
	assert.True(t, pattern.Match(p, []event.Tag{
		event.Shape, event.GlobalIdentifier, event.Field, event.Field, event.Documentation, event.Tags,
	}))
	assert.False(t, pattern.Match(p, []event.Tag{
		event.Shape, event.LocalIdentifier,
	}))
}

func TestParseUndefinedAtomErrors(t *testing.T) {
	_, err := pattern.Parse("NotARealTag")
	assert.Error(t, err)
}

func TestParseUnterminatedGroupErrors(t *testing.T) {
	_, err := pattern.Parse("(+ U32")
	assert.Error(t, err)
}

func TestParseWildcardMatchesAnyTag(t *testing.T) {
	p := mustParse(t, event.Field.Pattern()) // "String (+ _)"
	assert.True(t, pattern.Match(p, []event.Tag{event.String, event.U32}))
	assert.True(t, pattern.Match(p, []event.Tag{event.String, event.Shape, event.Documentation}))
	assert.False(t, pattern.Match(p, []event.Tag{event.String}))
}
