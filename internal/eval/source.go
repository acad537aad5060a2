// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/criloz/primalrpc/internal/cst"
	"github.com/criloz/primalrpc/internal/cst/reader"
	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/metrics"
	"github.com/criloz/primalrpc/internal/store"
)

// supportedIDLVersions is the closed set of `(version "...")` values this
// evaluator accepts. Only "1" exists today; the slice (rather than a bare
// constant) is what UnsupportedIDLVersion reports back to the caller.
var supportedIDLVersions = []string{"1"}

// formBuilder is one entry of the dispatch table evaluate() consults: a
// head symbol maps to the function that evaluates the rest of that list's
// arguments into a Resource.
type formBuilder func(form cst.Node, args []cst.Node, source string, sourceID ids.SourceID, pkg *store.Package) (ids.Resource, error)

var dispatchTable = map[string]formBuilder{
	"id":   evalIDForm,
	"enum": enumDecl,
}

// ParseSource builds the concrete syntax tree for src via the reference
// reader and runs the evaluator over it, extending pkg with every
// declaration it finds. It is the sole entry point a caller (the package
// orchestration layer, out of this module's scope) needs.
func ParseSource(src []byte, sourceID ids.SourceID, pkg *store.Package) error {
	return ParseSourceWithMetrics(src, sourceID, pkg, nil)
}

// ParseSourceWithMetrics is ParseSource, additionally recording the run's
// duration and outcome on mc. A nil mc disables instrumentation entirely.
func ParseSourceWithMetrics(src []byte, sourceID ids.SourceID, pkg *store.Package, mc *metrics.Collector) error {
	start := time.Now()
	root, err := reader.Parse(string(src))
	if err != nil {
		mc.ObserveParse(time.Since(start).Seconds(), "cst_error")
		return err
	}
	err = visitSource(root, string(src), sourceID, pkg)
	kind := ""
	if synErr, ok := err.(*diag.SyntaxError); ok {
		kind = synErr.Kind.String()
	} else if err != nil {
		kind = "unknown"
	}
	mc.ObserveParse(time.Since(start).Seconds(), kind)
	return err
}

// visitSource iterates the top-level list_lit forms of the document,
// dispatching each by its head symbol. The first form must be a successful
// `(version "1")`; any `(def ...)` seen before that fails with
// IDLMissingVersion.
func visitSource(root cst.Node, source string, sourceID ids.SourceID, pkg *store.Package) error {
	forms := cst.FilterNotExtraAllowDocs(root, source)
	versioned := false
	for _, form := range forms {
		if form.Kind() != cst.KindListLit {
			// A stray top-level doc comment or punctuation noise; the
			// surface language has no floating-attribute target at the
			// top level, so there is nothing to attach it to.
			continue
		}
		head, headNode, ok := headSymbol(form, source)
		if !ok {
			return &diag.SyntaxError{Kind: diag.UndefinedSymbol, SourceID: sourceID, Locations: []diag.Point{pointOf(form, sourceID)}}
		}
		switch head {
		case "version":
			if err := visitTopVersion(form, source, sourceID); err != nil {
				return err
			}
			versioned = true
		case "def":
			if !versioned {
				return &diag.SyntaxError{Kind: diag.IDLMissingVersion, SourceID: sourceID, Locations: []diag.Point{pointOf(form, sourceID)}}
			}
			if err := visitDef(form, source, sourceID, pkg); err != nil {
				return err
			}
		default:
			return &diag.SyntaxError{
				Kind: diag.UndefinedSymbol, SourceID: sourceID,
				Expected: "version, def", Got: head,
				Locations: []diag.Point{pointOf(headNode, sourceID)},
			}
		}
	}
	return nil
}

// visitTopVersion evaluates `(version "<v>")`. The version string is run
// through golang.org/x/mod/semver to confirm it is at least a well-formed
// version token before checking it against the one accepted value: a
// malformed token (not even shaped like a version) is a TypeError, while a
// well-formed but unsupported one is UnsupportedIDLVersion.
func visitTopVersion(form cst.Node, source string, sourceID ids.SourceID) error {
	args := cst.FilterNotExtraAllowDocs(form, source)
	if len(args) != 2 {
		return &diag.SyntaxError{
			Kind: diag.InvalidNumberOfArguments, SourceID: sourceID,
			ExpectedCount: 1, GotCount: len(args) - 1,
			Locations: []diag.Point{pointOf(form, sourceID)},
		}
	}
	verNode := args[1]
	if verNode.Kind() != cst.KindStrLit {
		return &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "str_lit", Got: verNode.Kind(),
			Locations: []diag.Point{pointOf(verNode, sourceID)},
		}
	}
	v := unquote(verNode.Text(source))
	if !semver.IsValid(canonicalSemver(v)) {
		return &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "version string", Got: v,
			Locations: []diag.Point{pointOf(verNode, sourceID)},
		}
	}
	for _, supported := range supportedIDLVersions {
		if v == supported {
			return nil
		}
	}
	return &diag.SyntaxError{
		Kind: diag.UnsupportedIDLVersion, SourceID: sourceID,
		Got: v, SupportedValues: supportedIDLVersions,
		Locations: []diag.Point{pointOf(verNode, sourceID)},
	}
}

// canonicalSemver pads a bare version token ("1", "1.2") out to the
// "vMAJOR.MINOR.PATCH" shape semver.IsValid expects.
func canonicalSemver(v string) string {
	s := "v" + v
	for strings.Count(s, ".") < 2 {
		s += ".0"
	}
	return s
}

// visitDef evaluates `(def NAME (id ...) (<form> ...))`: three positional
// arguments after the head symbol. On success the name/evolve-id/resource
// triple is recorded as a Definition, and — for the one resource kind that
// declares a Shape today, an Enumeration — the Shape is finalized (given a
// CompilerId, a name, a cross-schema id derived from the evolve id, and
// IsReady=true) and the enumeration's own EvolveId is attached. This is the
// "later pass" spec.md §9 Open Question 3 says populates a Shape; here it
// runs in the same evaluation as the declaring def, since nothing else in
// this module schedules a separate pass.
func visitDef(form cst.Node, source string, sourceID ids.SourceID, pkg *store.Package) error {
	items := cst.FilterNotExtraAllowDocs(form, source)
	if len(items) != 4 {
		return &diag.SyntaxError{
			Kind: diag.InvalidNumberOfArguments, SourceID: sourceID,
			ExpectedCount: 3, GotCount: len(items) - 1,
			Locations: []diag.Point{pointOf(form, sourceID)},
		}
	}

	nameNode := items[1]
	if nameNode.Kind() != cst.KindSymLit {
		return &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "sym_lit", Got: nameNode.Kind(),
			Locations: []diag.Point{pointOf(nameNode, sourceID)},
		}
	}
	name := symText(nameNode, source)

	idFormNode := items[2]
	if idFormNode.Kind() != cst.KindListLit {
		return &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "list_lit", Got: idFormNode.Kind(),
			Locations: []diag.Point{pointOf(idFormNode, sourceID)},
		}
	}
	idRes, err := evaluate(idFormNode, source, sourceID, pkg)
	if err != nil {
		return err
	}
	if idRes.Kind != ids.ResourceEvolveID {
		return &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "id", Got: string(idRes.Kind),
			Locations: []diag.Point{pointOf(idFormNode, sourceID)},
		}
	}

	resourceFormNode := items[3]
	if resourceFormNode.Kind() != cst.KindListLit {
		return &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "list_lit", Got: resourceFormNode.Kind(),
			Locations: []diag.Point{pointOf(resourceFormNode, sourceID)},
		}
	}
	res, err := evaluate(resourceFormNode, source, sourceID, pkg)
	if err != nil {
		return err
	}
	if res.Kind == ids.ResourceEvolveID {
		return &diag.SyntaxError{
			Kind: diag.TypeError, SourceID: sourceID,
			Expected: "<resource>", Got: "id",
			Locations: []diag.Point{pointOf(resourceFormNode, sourceID)},
		}
	}

	pkg.AddDefinition(spanOf(form, sourceID), store.Definition{
		Name: name, EvolveID: idRes.EvolveID, Resource: res, SourceID: sourceID,
	})

	if res.Kind == ids.ResourceEnum {
		finalizeEnumShape(pkg, name, idRes.EvolveID, res.EnumID)
	}
	return nil
}

// finalizeEnumShape flips an enum's Shape to ready, assigning its
// CompilerId, name, and cross-schema id, and attaches the declaring def's
// evolve id to the Enumeration itself (recorded separately during
// enumDecl, since the evolve id isn't evaluated until the enclosing def is
// visited).
func finalizeEnumShape(pkg *store.Package, name string, evolveID ids.EvolveID, enumID ids.EnumID) {
	shapeID, ok := pkg.EnumerationShape(enumID)
	if !ok {
		panic("eval: enum has no associated shape")
	}
	track, ok := pkg.EvolveTrack(evolveID)
	if !ok {
		panic("eval: dangling evolve id")
	}
	var seg store.Segment
	switch track.Kind {
	case store.EvolveLocal:
		seg = store.U32Segment(track.Local)
	case store.EvolveUUID:
		seg = store.UUIDSegment(track.UUID)
	}
	pkg.SetShape(shapeID, store.Shape{
		Name: name, HasName: true,
		HasCompilerID: true, CompilerID: pkg.NewCompilerID(),
		CrossSchemaID: []store.Segment{seg},
		IsReady:       true,
	})

	enum, ok := pkg.Enumeration(enumID)
	if !ok {
		panic("eval: dangling enum id")
	}
	enum.EvolveID = evolveID
	pkg.SetEnumeration(enumID, enum)
}

// evaluate dispatches a list_lit by its head symbol to the matching
// formBuilder, the "dispatch table of form builders" spec.md §2 names.
// A head symbol outside the table is FunctionNotFound, distinct from the
// UndefinedSymbol visitSource reports for an unrecognized top-level form:
// this is a lookup failure inside an already-recognized def, not an
// unrecognized top-level construct.
func evaluate(form cst.Node, source string, sourceID ids.SourceID, pkg *store.Package) (ids.Resource, error) {
	head, headNode, ok := headSymbol(form, source)
	if !ok {
		return ids.Resource{}, &diag.SyntaxError{Kind: diag.ExpectingNode, SourceID: sourceID, Locations: []diag.Point{pointOf(form, sourceID)}}
	}
	builder, ok := dispatchTable[head]
	if !ok {
		return ids.Resource{}, &diag.SyntaxError{
			Kind: diag.FunctionNotFound, SourceID: sourceID, Got: head,
			Locations: []diag.Point{pointOf(headNode, sourceID)},
		}
	}
	args := cst.FilterNotExtraAllowDocs(form, source)
	return builder(form, args, source, sourceID, pkg)
}
