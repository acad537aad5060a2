// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"github.com/criloz/primalrpc/internal/cst"
	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/store"
	"github.com/google/uuid"
)

// evalIDForm evaluates `(id <"UUID" | u32>)`: a str_lit argument is parsed
// as a UUID, a num_lit argument as a u32; either a zero UUID or a zero u32
// is rejected with CantBeZero.
func evalIDForm(form cst.Node, args []cst.Node, source string, sourceID ids.SourceID, pkg *store.Package) (ids.Resource, error) {
	if len(args) != 2 {
		return ids.Resource{}, &diag.SyntaxError{
			Kind: diag.InvalidNumberOfArguments, SourceID: sourceID,
			ExpectedCount: 1, GotCount: len(args) - 1,
			Locations: []diag.Point{pointOf(form, sourceID)},
		}
	}
	arg := args[1]
	switch arg.Kind() {
	case cst.KindStrLit:
		text := unquote(arg.Text(source))
		u, err := uuid.Parse(text)
		if err != nil {
			return ids.Resource{}, &diag.SyntaxError{
				Kind: diag.TypeError, SourceID: sourceID,
				Expected: "uuid", Got: text,
				Locations: []diag.Point{pointOf(arg, sourceID)},
			}
		}
		if u == uuid.Nil {
			return ids.Resource{}, &diag.SyntaxError{Kind: diag.CantBeZero, SourceID: sourceID, Locations: []diag.Point{pointOf(arg, sourceID)}}
		}
		evID := pkg.AddEvolveTrack(spanOf(form, sourceID), store.UUIDEvolveTrack(u))
		return ids.EvolveResource(evID), nil
	case cst.KindNumLit:
		n, err := parseU32(arg.Text(source))
		if err != nil {
			return ids.Resource{}, &diag.SyntaxError{
				Kind: diag.TypeError, SourceID: sourceID,
				Expected: "u32", Got: arg.Text(source),
				Locations: []diag.Point{pointOf(arg, sourceID)},
			}
		}
		if n == 0 {
			return ids.Resource{}, &diag.SyntaxError{Kind: diag.CantBeZero, SourceID: sourceID, Locations: []diag.Point{pointOf(arg, sourceID)}}
		}
		evID := pkg.AddEvolveTrack(spanOf(form, sourceID), store.LocalEvolveTrack(n))
		return ids.EvolveResource(evID), nil
	default:
		return ids.Resource{}, &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "str_lit or num_lit", Got: arg.Kind(),
			Locations: []diag.Point{pointOf(arg, sourceID)},
		}
	}
}
