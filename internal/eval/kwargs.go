// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package eval is the semantic evaluator: visitSource -> visitTopList ->
// visitTopVersion/visitDef -> evaluate, a dispatch table of form builders
// keyed by head symbol, plus readKW, the floating-attribute linearizer
// that is this surface language's most distinctive feature.
package eval

import (
	"github.com/criloz/primalrpc/internal/cst"
	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/ids"
)

// KWArgKind discriminates the three slot shapes of the keyword-argument
// convention. readKW returns only KV and Value slots: a terminal bag of
// orphaned attributes (None) is reported as an UnattachedAttribute error
// instead of being returned.
type KWArgKind int

const (
	KWArgKV KWArgKind = iota
	KWArgValue
	KWArgNone
)

// KWArg is one linearized slot of a keyword-argument sequence: a key with
// an optional value (KV), a bare positional value (Value), or a terminal
// bag of attributes that never found a home (None — always an error).
type KWArg struct {
	Kind KWArgKind

	KeyNode cst.Node
	Key     string

	ValueNode cst.Node
	HasValue  bool

	DocNodes  []cst.Node
	MetaNodes []cst.Node
	IDNodes   []cst.Node
}

// linearizer holds the scanning state readKW advances through its input.
type linearizer struct {
	source   string
	sourceID ids.SourceID

	activeDocs  []cst.Node
	activeMeta  []cst.Node
	activeIDs   []cst.Node
	open        *KWArg
	results     []KWArg
}

// readKW linearizes a flat sequence of already-doc-filtered sibling nodes
// (as produced by cst.FilterNotExtraAllowDocs) into a slice of KWArg slots,
// re-attaching documentation comments, meta literals, and (id ...) forms
// to the keyword or value they lexically precede.
func readKW(nodes []cst.Node, source string, sourceID ids.SourceID) ([]KWArg, error) {
	l := &linearizer{source: source, sourceID: sourceID}
	for _, n := range nodes {
		if err := l.step(n); err != nil {
			return nil, err
		}
	}
	return l.finish()
}

func (l *linearizer) step(n cst.Node) error {
	switch n.Kind() {
	case cst.KindComment:
		if l.open != nil && !l.open.HasValue {
			l.closeOpen()
		}
		l.activeDocs = append(l.activeDocs, n)
		return nil
	case cst.KindMetaLit:
		// A standalone ^tag not fused into a sym_lit (it wasn't immediately
		// followed by a symbol) — it floats the same way a doc comment
		// does: forward onto whatever keyword or value comes next.
		if l.open != nil && !l.open.HasValue {
			l.closeOpen()
		}
		l.activeMeta = append(l.activeMeta, n)
		return nil
	case cst.KindSymLit:
		if metas := metaChildren(n); len(metas) > 0 {
			l.activeMeta = append(l.activeMeta, metas...)
		}
		l.attachValue(n)
		return nil
	case cst.KindKwdLit:
		l.closeOpen()
		l.open = &KWArg{
			Kind:      KWArgKV,
			KeyNode:   n,
			Key:       keywordText(n, l.source),
			DocNodes:  l.activeDocs,
			MetaNodes: l.activeMeta,
			IDNodes:   l.activeIDs,
		}
		l.resetActive()
		return nil
	case cst.KindListLit:
		if listHeadIsID(n, l.source) {
			l.activeIDs = append(l.activeIDs, n)
			return nil
		}
		l.attachValue(n)
		return nil
	default:
		l.attachValue(n)
		return nil
	}
}

// attachValue assigns n as the value of the currently open KV, or emits a
// standalone Value slot if no KV is open.
func (l *linearizer) attachValue(n cst.Node) {
	if l.open != nil && !l.open.HasValue {
		l.open.ValueNode = n
		l.open.HasValue = true
		l.open.DocNodes = append(l.open.DocNodes, l.activeDocs...)
		l.open.MetaNodes = append(l.open.MetaNodes, l.activeMeta...)
		l.open.IDNodes = append(l.open.IDNodes, l.activeIDs...)
		l.resetActive()
		l.closeOpen()
		return
	}
	l.results = append(l.results, KWArg{
		Kind:      KWArgValue,
		ValueNode: n,
		HasValue:  true,
		DocNodes:  l.activeDocs,
		MetaNodes: l.activeMeta,
		IDNodes:   l.activeIDs,
	})
	l.resetActive()
}

func (l *linearizer) resetActive() {
	l.activeDocs = nil
	l.activeMeta = nil
	l.activeIDs = nil
}

func (l *linearizer) closeOpen() {
	if l.open == nil {
		return
	}
	l.results = append(l.results, *l.open)
	l.open = nil
}

func (l *linearizer) finish() ([]KWArg, error) {
	// An open KV is flushed as is; (id ...) forms that followed its key
	// without a value are orphans and fall through to the check below.
	l.closeOpen()
	if len(l.activeDocs) > 0 || len(l.activeMeta) > 0 || len(l.activeIDs) > 0 {
		var at cst.Node
		var kind diag.AttributeKind
		switch {
		case len(l.activeIDs) > 0:
			at, kind = l.activeIDs[0], diag.AttrID
		case len(l.activeMeta) > 0:
			at, kind = l.activeMeta[0], diag.AttrMeta
		default:
			at, kind = l.activeDocs[0], diag.AttrDoc
		}
		return nil, &diag.SyntaxError{
			Kind:          diag.UnattachedAttribute,
			AttributeKind: kind,
			SourceID:      l.sourceID,
			Locations:     []diag.Point{pointOf(at, l.sourceID)},
		}
	}
	return l.results, nil
}
