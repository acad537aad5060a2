// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package eventgen_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criloz/primalrpc/internal/event"
	"github.com/criloz/primalrpc/internal/eventgen"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/pattern"
	"github.com/criloz/primalrpc/internal/store"
)

// buildEnumPackage assembles a ready-to-generate Elementary enum with two
// variants (one documented and tagged, one plain), the shape a successful
// internal/eval run would have left behind.
func buildEnumPackage(t *testing.T) (*store.Package, ids.EnumID) {
	t.Helper()
	pkg := store.NewPackage()

	shapeID := pkg.AddShape(store.Span{}, store.Shape{})
	enumID := pkg.AddEnumeration(store.Span{}, shapeID, store.Enumeration{})

	enumEvolveID := pkg.AddEvolveTrack(store.Span{}, store.LocalEvolveTrack(7))

	acceptEvolveID := pkg.AddEvolveTrack(store.Span{}, store.LocalEvolveTrack(1))
	acceptKeyID := pkg.AddKey(store.Span{}, store.Key{Segments: []string{"Accept"}})
	docID := pkg.AddDoc("stop all retries")
	tagID := pkg.AddTag(store.Span{}, store.Tag{Kind: store.TagWord, Word: "idempotent"}, "idempotent")
	acceptVariant := store.EnumVariant{
		LocalID: acceptEvolveID, HasCompilerID: true, CompilerID: pkg.NewCompilerID(),
		CrossSchemaID: []store.Segment{store.U32Segment(1)},
		Name:          store.VariantNameFromKey(acceptKeyID),
		Docs:          []ids.DocID{docID}, Tags: []ids.TagID{tagID},
		Kind: store.VariantUnit,
	}
	acceptID := pkg.AddEnumVariant(store.Span{}, acceptVariant)

	rejectEvolveID := pkg.AddEvolveTrack(store.Span{}, store.LocalEvolveTrack(2))
	rejectKeyID := pkg.AddKey(store.Span{}, store.Key{Segments: []string{"Reject"}})
	rejectVariant := store.EnumVariant{
		LocalID: rejectEvolveID, HasCompilerID: true, CompilerID: pkg.NewCompilerID(),
		CrossSchemaID: []store.Segment{store.U32Segment(2)},
		Name:          store.VariantNameFromKey(rejectKeyID),
		Kind:          store.VariantUnit,
	}
	rejectID := pkg.AddEnumVariant(store.Span{}, rejectVariant)

	pkg.SetShape(shapeID, store.Shape{
		Name: "RetryDecision", HasName: true,
		HasCompilerID: true, CompilerID: pkg.NewCompilerID(),
		CrossSchemaID: []store.Segment{store.U32Segment(7)},
		IsReady:       true,
	})
	pkg.SetEnumeration(enumID, store.Enumeration{
		Kind: store.EnumElementary, EvolveID: enumEvolveID,
		Variants: []ids.EnumVariantID{acceptID, rejectID},
	})

	return pkg, enumID
}

func collect(seq iter.Seq[eventgen.Event]) []eventgen.Event {
	var out []eventgen.Event
	for e := range seq {
		out = append(out, e)
	}
	return out
}

// countTags reports how many events in events carry tag.
func countTags(events []eventgen.Event, tag event.Tag) int {
	n := 0
	for _, e := range events {
		if e.Tag == tag {
			n++
		}
	}
	return n
}

func TestGenerateEnumEmitsElementaryEnumLast(t *testing.T) {
	pkg, enumID := buildEnumPackage(t)
	ctx := eventgen.NewContext()

	events := collect(eventgen.GenerateEnum(ctx, pkg, enumID))
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, eventgen.Branch, last.Kind)
	assert.Equal(t, event.ElementaryEnum, last.Tag)
	assert.Equal(t, 3, last.ChildCount) // Shape, LocalIdentifier, variants Field

	// Top level, post-order, directly precedes the root: variants Field,
	// then LocalIdentifier (the enum's own evolve id), then Shape
	// appears earliest since it is generated first.
	assert.Equal(t, event.Shape, events[6].Tag, "Shape subtree should close at index 6")
	assert.Equal(t, event.LocalIdentifier, events[8].Tag, "enum evolve id closes right after Shape")
	assert.Equal(t, event.Field, events[len(events)-2].Tag, "variants Field closes right before the root")

	// Exactly one EnumVariantUnit per variant.
	assert.Equal(t, 2, countTags(events, event.EnumVariantUnit))

	// The top-level pattern is satisfiable with Shape, LocalIdentifier
	// (the enum's own), and Field (variants) in order.
	p, err := pattern.Parse(event.ElementaryEnum.Pattern())
	require.NoError(t, err)
	assert.True(t, pattern.Match(p, []event.Tag{event.Shape, event.LocalIdentifier, event.Field}))
}

func TestGenerateEnumVariantEmitsEnumVariantUnitLast(t *testing.T) {
	pkg, enumID := buildEnumPackage(t)
	enum, ok := pkg.Enumeration(enumID)
	require.True(t, ok)
	require.Len(t, enum.Variants, 2)

	ctx := eventgen.NewContext()
	events := collect(eventgen.GenerateEnumVariant(ctx, pkg, enum.Variants[0]))
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, event.EnumVariantUnit, last.Tag)
	// LocalIdentifier, CompilerIdentifier, EvolutionaryIdentifier, EnumVariantName, Documentation, Tags
	assert.Equal(t, 6, last.ChildCount)

	p, err := pattern.Parse(event.EnumVariantUnit.Pattern())
	require.NoError(t, err)
	assert.True(t, pattern.Match(p, []event.Tag{
		event.LocalIdentifier, event.CompilerIdentifier, event.EvolutionaryIdentifier,
		event.EnumVariantName, event.Documentation, event.Tags,
	}))

	// The variant's name, doc text, and tag word all land in ctx.Strings,
	// in the order GenerateEnumVariant delegates to each sub-generator.
	assert.Contains(t, ctx.Strings, "Accept")
	assert.Contains(t, ctx.Strings, "stop all retries")
	assert.Contains(t, ctx.Strings, "idempotent")
}

func TestGenerateEnumVariantWithoutDocsOrTagsOmitsThem(t *testing.T) {
	pkg, enumID := buildEnumPackage(t)
	enum, ok := pkg.Enumeration(enumID)
	require.True(t, ok)

	ctx := eventgen.NewContext()
	events := collect(eventgen.GenerateEnumVariant(ctx, pkg, enum.Variants[1]))
	last := events[len(events)-1]
	assert.Equal(t, event.EnumVariantUnit, last.Tag)
	// LocalIdentifier, CompilerIdentifier, EvolutionaryIdentifier, EnumVariantName only.
	assert.Equal(t, 4, last.ChildCount)
	assert.Zero(t, countTags(events, event.Documentation))
	assert.Zero(t, countTags(events, event.Tags))
}

func TestGenerateShapePanicsWhenNotReady(t *testing.T) {
	pkg := store.NewPackage()
	shapeID := pkg.AddShape(store.Span{}, store.Shape{})
	ctx := eventgen.NewContext()

	assert.Panics(t, func() {
		collect(eventgen.GenerateShape(ctx, pkg, shapeID))
	})
}

func TestGenerateEnumPanicsOnDiscriminantUnion(t *testing.T) {
	pkg := store.NewPackage()
	shapeID := pkg.AddShape(store.Span{}, store.Shape{
		Name: "X", HasName: true, HasCompilerID: true,
		CompilerID: pkg.NewCompilerID(), CrossSchemaID: []store.Segment{store.U32Segment(1)}, IsReady: true,
	})
	enumID := pkg.AddEnumeration(store.Span{}, shapeID, store.Enumeration{Kind: store.EnumDiscriminantUnion})
	ctx := eventgen.NewContext()

	assert.Panics(t, func() {
		collect(eventgen.GenerateEnum(ctx, pkg, enumID))
	})
}

func TestGenerateDispatchesByResourceKind(t *testing.T) {
	pkg, enumID := buildEnumPackage(t)
	ctx := eventgen.NewContext()

	events := collect(eventgen.Generate(ctx, pkg, ids.EnumResource(enumID)))
	require.NotEmpty(t, events)
	assert.Equal(t, event.ElementaryEnum, events[len(events)-1].Tag)
}

func TestGenerateUnimplementedResourceKindPanics(t *testing.T) {
	pkg := store.NewPackage()
	ctx := eventgen.NewContext()

	assert.Panics(t, func() {
		collect(eventgen.Generate(ctx, pkg, ids.Resource{Kind: ids.ResourceStruct}))
	})
}
