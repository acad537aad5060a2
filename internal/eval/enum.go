// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"strings"

	"github.com/criloz/primalrpc/internal/cst"
	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/store"
	"github.com/criloz/primalrpc/internal/validate"
)

// enumDecl evaluates `(enum :variants [...] ...)`. Its Shape is created
// but left not-ready: visitDef finalizes it once the declaring def's name
// and evolve id are both known.
func enumDecl(form cst.Node, args []cst.Node, source string, sourceID ids.SourceID, pkg *store.Package) (ids.Resource, error) {
	// args[0] is the `enum` head symbol itself; only what follows it is
	// linearized.
	kwargs, err := readKW(args[1:], source, sourceID)
	if err != nil {
		return ids.Resource{}, err
	}

	var variantsNode cst.Node
	haveVariants := false
	var variantsDocs []cst.Node
	var tagNode, contentNode cst.Node

	for _, kw := range kwargs {
		if kw.Kind != KWArgKV {
			loc := form
			if kw.ValueNode != nil {
				loc = kw.ValueNode
			}
			return ids.Resource{}, &diag.SyntaxError{Kind: diag.ExpectingKeyValue, SourceID: sourceID, Locations: []diag.Point{pointOf(loc, sourceID)}}
		}
		switch kw.Key {
		case "variants":
			if !kw.HasValue || kw.ValueNode.Kind() != cst.KindVecLit {
				return ids.Resource{}, &diag.SyntaxError{
					Kind: diag.TypeError, SourceID: sourceID, Expected: "vec_lit",
					Locations: []diag.Point{pointOf(kw.KeyNode, sourceID)},
				}
			}
			variantsNode = kw.ValueNode
			haveVariants = true
			variantsDocs = kw.DocNodes
		case "tag":
			tagNode = kw.ValueNode
		case "content":
			contentNode = kw.ValueNode
		default:
			return ids.Resource{}, &diag.SyntaxError{
				Kind: diag.UnsupportedProperty, SourceID: sourceID,
				Expected: "variants, tag, content", Got: kw.Key,
				Locations: []diag.Point{pointOf(kw.KeyNode, sourceID)},
			}
		}
	}
	if !haveVariants {
		return ids.Resource{}, &diag.SyntaxError{Kind: diag.MissingValue, SourceID: sourceID, Locations: []diag.Point{pointOf(form, sourceID)}}
	}

	variantIDs, err := readEnumVariants(variantsNode, source, sourceID, pkg)
	if err != nil {
		return ids.Resource{}, err
	}

	var docIDs []ids.DocID
	for _, d := range variantsDocs {
		docIDs = append(docIDs, pkg.AddDoc(docText(d, source)))
	}

	var enum store.Enumeration
	if tagNode != nil || contentNode != nil {
		// DiscriminantUnion is reserved (see DESIGN.md): the variants are
		// still fully evaluated and recorded, but the tag-field struct and
		// generation for this shape are not implemented.
		enum = store.Enumeration{Kind: store.EnumDiscriminantUnion, UnionVariants: variantIDs}
	} else {
		enum = store.Enumeration{Kind: store.EnumElementary, Variants: variantIDs, Docs: docIDs}
	}

	shapeID := pkg.AddShape(spanOf(form, sourceID), store.Shape{})
	enumID := pkg.AddEnumeration(spanOf(form, sourceID), shapeID, enum)
	return ids.EnumResource(enumID), nil
}

// readEnumVariants evaluates every variant inside an enum's :variants
// vector. Each variant is one linearized KV slot: the key is the variant
// name, its floating (id ...) is the variant's local evolve id, and its
// floating docs/meta become the variant's documentation and tags.
func readEnumVariants(vecNode cst.Node, source string, sourceID ids.SourceID, pkg *store.Package) ([]ids.EnumVariantID, error) {
	items := cst.FilterNotExtraAllowDocs(vecNode, source)
	kwargs, err := readKW(items, source, sourceID)
	if err != nil {
		return nil, err
	}

	seenNames := map[string]cst.Node{}
	seenLocalIDs := map[uint32]cst.Node{}
	var out []ids.EnumVariantID

	for _, kw := range kwargs {
		if kw.Kind != KWArgKV {
			loc := vecNode
			if kw.ValueNode != nil {
				loc = kw.ValueNode
			}
			return nil, &diag.SyntaxError{Kind: diag.ExpectingKeyValue, SourceID: sourceID, Locations: []diag.Point{pointOf(loc, sourceID)}}
		}

		ok, cause := validate.IsEnumVariantName(kw.Key)
		if !ok {
			return nil, &diag.SyntaxError{
				Kind: diag.InvalidEnumVariantName, SourceID: sourceID,
				Cause:     mapVariantCause(cause),
				Locations: []diag.Point{pointOf(kw.KeyNode, sourceID)},
			}
		}
		lower := strings.ToLower(kw.Key)
		if prev, exists := seenNames[lower]; exists {
			return nil, diag.NewConflict(diag.ConflictVariantNameDefinition, sourceID, pointOf(prev, sourceID), pointOf(kw.KeyNode, sourceID))
		}
		seenNames[lower] = kw.KeyNode

		if len(kw.IDNodes) != 1 {
			loc := kw.KeyNode
			if len(kw.IDNodes) > 0 {
				loc = kw.IDNodes[len(kw.IDNodes)-1]
			}
			return nil, &diag.SyntaxError{
				Kind: diag.InvalidNumbersOfIDs, SourceID: sourceID,
				ExpectedCount: 1, GotCount: len(kw.IDNodes),
				Locations: []diag.Point{pointOf(loc, sourceID)},
			}
		}
		idForm := kw.IDNodes[0]
		idArgs := cst.FilterNotExtraAllowDocs(idForm, source)
		if len(idArgs) != 2 {
			return nil, &diag.SyntaxError{
				Kind: diag.InvalidNumberOfArguments, SourceID: sourceID,
				ExpectedCount: 1, GotCount: len(idArgs) - 1,
				Locations: []diag.Point{pointOf(idForm, sourceID)},
			}
		}
		valNode := idArgs[1]
		if valNode.Kind() == cst.KindStrLit {
			return nil, &diag.SyntaxError{
				Kind: diag.InvalidID, SourceID: sourceID,
				ExpectedScope: diag.ScopeLocal, GotScope: diag.ScopeGlobal,
				Locations: []diag.Point{pointOf(valNode, sourceID)},
			}
		}
		if valNode.Kind() != cst.KindNumLit {
			return nil, &diag.SyntaxError{
				Kind: diag.TypeError, SourceID: sourceID, Expected: "num_lit", Got: valNode.Kind(),
				Locations: []diag.Point{pointOf(valNode, sourceID)},
			}
		}
		localVal, err := parseU32(valNode.Text(source))
		if err != nil {
			return nil, &diag.SyntaxError{
				Kind: diag.TypeError, SourceID: sourceID, Expected: "u32", Got: valNode.Text(source),
				Locations: []diag.Point{pointOf(valNode, sourceID)},
			}
		}
		if localVal == 0 {
			return nil, &diag.SyntaxError{Kind: diag.CantBeZero, SourceID: sourceID, Locations: []diag.Point{pointOf(valNode, sourceID)}}
		}
		if prev, exists := seenLocalIDs[localVal]; exists {
			return nil, diag.NewConflict(diag.ConflictIDDefinition, sourceID, pointOf(prev, sourceID), pointOf(valNode, sourceID))
		}
		seenLocalIDs[localVal] = valNode

		if kw.HasValue {
			// A variant payload (typed value) is reserved — see DESIGN.md
			// Open Question 1 — so a present one is rejected outright
			// rather than guessed at.
			return nil, &diag.SyntaxError{
				Kind: diag.TypeError, SourceID: sourceID,
				Expected: "no payload", Got: "value",
				Locations: []diag.Point{pointOf(kw.ValueNode, sourceID)},
			}
		}

		evolveID := pkg.AddEvolveTrack(spanOf(idForm, sourceID), store.LocalEvolveTrack(localVal))
		keyID := pkg.AddKey(spanOf(kw.KeyNode, sourceID), store.Key{Segments: []string{kw.Key}})

		var docIDs []ids.DocID
		for _, d := range kw.DocNodes {
			docIDs = append(docIDs, pkg.AddDoc(docText(d, source)))
		}
		var tagIDs []ids.TagID
		for _, m := range kw.MetaNodes {
			word := metaText(m, source)
			tagIDs = append(tagIDs, pkg.AddTag(spanOf(m, sourceID), store.Tag{Kind: store.TagWord, Word: word}, word))
		}

		variant := store.EnumVariant{
			LocalID:       evolveID,
			HasCompilerID: true,
			CompilerID:    pkg.NewCompilerID(),
			CrossSchemaID: []store.Segment{store.U32Segment(localVal)},
			Name:          store.VariantNameFromKey(keyID),
			Tags:          tagIDs,
			Docs:          docIDs,
			Kind:          store.VariantUnit,
		}
		out = append(out, pkg.AddEnumVariant(spanOf(kw.KeyNode, sourceID), variant))
	}
	return out, nil
}

func mapVariantCause(c validate.VariantNameCause) diag.VariantNameCause {
	switch c {
	case validate.CausePattern:
		return diag.CausePattern
	case validate.CausePascalCase:
		return diag.CausePascalCase
	case validate.CauseMultipleSegments:
		return diag.CauseMultipleSegments
	default:
		return diag.CausePattern
	}
}
