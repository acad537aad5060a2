// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package eventgen

import (
	"fmt"
	"iter"
	"strings"

	"github.com/criloz/primalrpc/internal/event"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/metrics"
	"github.com/criloz/primalrpc/internal/store"
)

// forward ranges over seq, relaying every event to yield. It reports
// whether the caller should keep going (yield never returned false); a
// delegating generator uses this to splice a full child subtree into its
// own stream without caring how many events the child emitted — its own
// child_count only ever increments by one per delegate call, per the
// composition discipline every procedure below follows.
func forward(yield func(Event) bool, seq iter.Seq[Event]) bool {
	ok := true
	seq(func(e Event) bool {
		if !yield(e) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func genU32Leaf(ctx *Context, v uint32) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		ctx.U32 = append(ctx.U32, v)
		yield(Event{Kind: Leaf, Tag: event.U32})
	}
}

func genStringLeaf(ctx *Context, v string) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		ctx.Strings = append(ctx.Strings, v)
		yield(Event{Kind: Leaf, Tag: event.String})
	}
}

func genCompilerID(ctx *Context, id ids.CompilerID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if !id.Valid() {
			panic("eventgen: compiler id required but absent")
		}
		if !forward(yield, genU32Leaf(ctx, uint32(id))) {
			return
		}
		yield(Event{Kind: Branch, Tag: event.CompilerIdentifier, ChildCount: 1})
	}
}

func genSegment(ctx *Context, s store.Segment) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		switch s.Kind {
		case store.SegmentU32:
			forward(yield, genU32Leaf(ctx, s.U32))
		case store.SegmentUUID:
			if !forward(yield, genStringLeaf(ctx, s.UUID.String())) {
				return
			}
			yield(Event{Kind: Branch, Tag: event.Uuid, ChildCount: 1})
		case store.SegmentString:
			forward(yield, genStringLeaf(ctx, s.Str))
		}
	}
}

// genCrossSchemaID emits the EvolutionaryIdentifier wrapper around a
// Shape or EnumVariant's cross-schema id path.
func genCrossSchemaID(ctx *Context, segs []store.Segment) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if len(segs) == 0 {
			panic("eventgen: cross-schema id must be non-empty")
		}
		n := 0
		for _, s := range segs {
			if !forward(yield, genSegment(ctx, s)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.EvolutionaryIdentifier, ChildCount: n})
	}
}

// genEvolveID emits the LocalIdentifier/GlobalIdentifier wrapper for an
// EvolveTrack, used where the data model calls for an EvolveId directly
// (an enum's own evolve id, a variant's local id).
func genEvolveID(ctx *Context, pkg *store.Package, id ids.EvolveID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		track, ok := pkg.EvolveTrack(id)
		if !ok {
			panic("eventgen: evolve id out of range")
		}
		switch track.Kind {
		case store.EvolveLocal:
			if !forward(yield, genU32Leaf(ctx, track.Local)) {
				return
			}
			yield(Event{Kind: Branch, Tag: event.LocalIdentifier, ChildCount: 1})
		case store.EvolveUUID:
			if !forward(yield, genStringLeaf(ctx, track.UUID.String())) {
				return
			}
			if !yield(Event{Kind: Branch, Tag: event.Uuid, ChildCount: 1}) {
				return
			}
			yield(Event{Kind: Branch, Tag: event.GlobalIdentifier, ChildCount: 1})
		}
	}
}

// genLocalIdentifier is genEvolveID specialized to the invariant that an
// enum variant's local id is always EvolveLocal (enforced at evaluation
// time); a UUID here is an invariant violation, not a user error.
func genLocalIdentifier(ctx *Context, pkg *store.Package, id ids.EvolveID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		track, ok := pkg.EvolveTrack(id)
		if !ok {
			panic("eventgen: variant local id out of range")
		}
		if track.Kind != store.EvolveLocal {
			panic("eventgen: variant local id must be local")
		}
		if !forward(yield, genU32Leaf(ctx, track.Local)) {
			return
		}
		yield(Event{Kind: Branch, Tag: event.LocalIdentifier, ChildCount: 1})
	}
}

func genShapeName(ctx *Context, name string) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if !forward(yield, genStringLeaf(ctx, name)) {
			return
		}
		yield(Event{Kind: Branch, Tag: event.ShapeName, ChildCount: 1})
	}
}

func genDerivedTrace(ctx *Context, trace []ids.CompilerID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		n := 0
		for _, c := range trace {
			if !forward(yield, genCompilerID(ctx, c)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.DerivedTrace, ChildCount: n})
	}
}

func genDocs(ctx *Context, pkg *store.Package, docIDs []ids.DocID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		n := 0
		for _, d := range docIDs {
			text, ok := pkg.Doc(d)
			if !ok {
				panic("eventgen: dangling doc id")
			}
			if !forward(yield, genStringLeaf(ctx, text)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.Documentation, ChildCount: n})
	}
}

func genTags(ctx *Context, pkg *store.Package, tagIDs []ids.TagID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		n := 0
		for _, t := range tagIDs {
			name, ok := pkg.TagName(t)
			if !ok {
				panic("eventgen: dangling tag id")
			}
			if !forward(yield, genStringLeaf(ctx, name)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.Tags, ChildCount: n})
	}
}

// GenerateShape emits a Shape's CompilerIdentifier, EvolutionaryIdentifier,
// ShapeName, and optional DerivedTrace children, closing with Shape. The
// preconditions below are invariants a Package the evaluator produced
// always satisfies once IsReady is true; a violation here is a bug in the
// caller, not a user-facing error, so it panics rather than returning one.
func GenerateShape(ctx *Context, pkg *store.Package, id ids.ShapeID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		shape, ok := pkg.Shape(id)
		if !ok {
			panic("eventgen: shape id out of range")
		}
		if !shape.IsReady {
			panic("eventgen: shape is not ready for generation")
		}
		if !shape.HasCompilerID || !shape.CompilerID.Valid() {
			panic("eventgen: shape missing compiler id")
		}
		if len(shape.CrossSchemaID) == 0 {
			panic("eventgen: shape missing cross-schema id")
		}
		if !shape.HasName {
			panic("eventgen: shape missing name")
		}

		n := 0
		if !forward(yield, genCompilerID(ctx, shape.CompilerID)) {
			return
		}
		n++
		if !forward(yield, genCrossSchemaID(ctx, shape.CrossSchemaID)) {
			return
		}
		n++
		if !forward(yield, genShapeName(ctx, shape.Name)) {
			return
		}
		n++
		if len(shape.DerivedTrace) > 0 {
			if !forward(yield, genDerivedTrace(ctx, shape.DerivedTrace)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.Shape, ChildCount: n})
	}
}

func genVariantName(ctx *Context, pkg *store.Package, vn store.VariantName) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		var name string
		switch vn.Kind {
		case store.VariantNameFromAST:
			key, ok := pkg.Key(vn.KeyID)
			if !ok {
				panic("eventgen: dangling variant name key id")
			}
			name = strings.Join(key.Segments, ":")
		case store.VariantNameGenerated:
			name = vn.Generated
		}
		ctx.Strings = append(ctx.Strings, name)
		yield(Event{Kind: Leaf, Tag: event.EnumVariantName})
	}
}

// GenerateEnumVariant emits a unit enum variant's LocalIdentifier,
// CompilerIdentifier, EvolutionaryIdentifier, EnumVariantName, and
// optional Documentation/Tags/DerivedTrace, closing with EnumVariantUnit.
func GenerateEnumVariant(ctx *Context, pkg *store.Package, id ids.EnumVariantID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		v, ok := pkg.EnumVariant(id)
		if !ok {
			panic("eventgen: enum variant id out of range")
		}
		if v.Kind != store.VariantUnit {
			panic("eventgen: typed enum variant payload generation is not implemented")
		}
		if !v.HasCompilerID || !v.CompilerID.Valid() {
			panic("eventgen: enum variant missing compiler id")
		}
		if len(v.CrossSchemaID) == 0 {
			panic("eventgen: enum variant missing cross-schema id")
		}

		n := 0
		if !forward(yield, genLocalIdentifier(ctx, pkg, v.LocalID)) {
			return
		}
		n++
		if !forward(yield, genCompilerID(ctx, v.CompilerID)) {
			return
		}
		n++
		if !forward(yield, genCrossSchemaID(ctx, v.CrossSchemaID)) {
			return
		}
		n++
		if !forward(yield, genVariantName(ctx, pkg, v.Name)) {
			return
		}
		n++
		if len(v.Docs) > 0 {
			if !forward(yield, genDocs(ctx, pkg, v.Docs)) {
				return
			}
			n++
		}
		if len(v.Tags) > 0 {
			if !forward(yield, genTags(ctx, pkg, v.Tags)) {
				return
			}
			n++
		}
		if len(v.DerivedTrace) > 0 {
			if !forward(yield, genDerivedTrace(ctx, v.DerivedTrace)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.EnumVariantUnit, ChildCount: n})
	}
}

// genVariantsField emits the synthetic "variants" Field: a String key
// leaf followed by one GenerateEnumVariant delegate per variant.
func genVariantsField(ctx *Context, pkg *store.Package, variants []ids.EnumVariantID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		n := 0
		if !forward(yield, genStringLeaf(ctx, "variants")) {
			return
		}
		n++
		for _, v := range variants {
			if !forward(yield, GenerateEnumVariant(ctx, pkg, v)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.Field, ChildCount: n})
	}
}

// genDefaultField emits the synthetic "default" Field wrapping the
// enumeration's default variant.
func genDefaultField(ctx *Context, pkg *store.Package, def ids.EnumVariantID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		n := 0
		if !forward(yield, genStringLeaf(ctx, "default")) {
			return
		}
		n++
		if !forward(yield, GenerateEnumVariant(ctx, pkg, def)) {
			return
		}
		n++
		yield(Event{Kind: Branch, Tag: event.Field, ChildCount: n})
	}
}

// GenerateEnum emits an Elementary enumeration's Shape and EvolveId
// children, the synthetic variants Field, an optional default Field,
// optional Documentation and Tags, closing with ElementaryEnum.
// DiscriminantUnion generation is reserved (see DESIGN.md); encountering
// one here is an invariant violation in the caller, since nothing upstream
// should hand a DiscriminantUnion enum id to this path yet.
func GenerateEnum(ctx *Context, pkg *store.Package, id ids.EnumID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		enum, ok := pkg.Enumeration(id)
		if !ok {
			panic("eventgen: enum id out of range")
		}
		if enum.Kind != store.EnumElementary {
			panic("eventgen: discriminant-union enum generation is not implemented")
		}
		shapeID, ok := pkg.EnumerationShape(id)
		if !ok {
			panic("eventgen: enum has no associated shape")
		}

		n := 0
		if !forward(yield, GenerateShape(ctx, pkg, shapeID)) {
			return
		}
		n++
		if !forward(yield, genEvolveID(ctx, pkg, enum.EvolveID)) {
			return
		}
		n++
		if !forward(yield, genVariantsField(ctx, pkg, enum.Variants)) {
			return
		}
		n++
		if enum.HasDefault {
			if !forward(yield, genDefaultField(ctx, pkg, enum.Default)) {
				return
			}
			n++
		}
		if len(enum.Docs) > 0 {
			if !forward(yield, genDocs(ctx, pkg, enum.Docs)) {
				return
			}
			n++
		}
		if len(enum.Tags) > 0 {
			if !forward(yield, genTags(ctx, pkg, enum.Tags)) {
				return
			}
			n++
		}
		yield(Event{Kind: Branch, Tag: event.ElementaryEnum, ChildCount: n})
	}
}

// Generate dispatches on a Resource's kind to the matching per-entity
// procedure. Resource kinds with no generation procedure yet (anything
// but an Elementary enum) panic: a caller should only ever reach Generate
// with a root the evaluator is known to have fully populated.
func Generate(ctx *Context, pkg *store.Package, res ids.Resource) iter.Seq[Event] {
	return GenerateWithMetrics(ctx, pkg, res, nil)
}

// GenerateWithMetrics is Generate, additionally recording the run's start
// on mc (labeled by resource kind). A nil mc disables instrumentation.
func GenerateWithMetrics(ctx *Context, pkg *store.Package, res ids.Resource, mc *metrics.Collector) iter.Seq[Event] {
	mc.ObserveGenerationStart(string(res.Kind))
	switch res.Kind {
	case ids.ResourceEnum:
		return GenerateEnum(ctx, pkg, res.EnumID)
	default:
		return func(yield func(Event) bool) {
			panic(fmt.Sprintf("eventgen: generation not implemented for resource kind %q", res.Kind))
		}
	}
}
