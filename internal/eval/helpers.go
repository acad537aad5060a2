// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"strconv"
	"strings"

	"github.com/criloz/primalrpc/internal/cst"
	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/store"
)

func pointOf(n cst.Node, sourceID ids.SourceID) diag.Point {
	pos := n.StartPosition()
	return diag.Point{SourceID: sourceID, Byte: n.StartByte(), Row: pos.Row, Col: pos.Col}
}

func spanOf(n cst.Node, sourceID ids.SourceID) store.Span {
	return store.Span{SourceID: sourceID, Start: n.StartByte(), End: n.EndByte()}
}

// keywordText strips the leading ':' from a kwd_lit's text.
func keywordText(n cst.Node, source string) string {
	t := n.Text(source)
	return strings.TrimPrefix(t, ":")
}

// metaText strips the leading '^' from a meta_lit's text.
func metaText(n cst.Node, source string) string {
	t := n.Text(source)
	return strings.TrimPrefix(t, "^")
}

// docText strips the leading ";;" (and one following space, if present)
// from a documentation comment's text.
func docText(n cst.Node, source string) string {
	t := n.Text(source)
	t = strings.TrimPrefix(t, ";;")
	return strings.TrimPrefix(t, " ")
}

// symText returns a sym_lit node's underlying symbol text: its last
// sym_name child (any leading meta_lit children are skipped).
func symText(n cst.Node, source string) string {
	if n.Kind() != cst.KindSymLit {
		return n.Text(source)
	}
	for i := n.ChildCount() - 1; i >= 0; i-- {
		c := n.Child(i)
		if c.Kind() == cst.KindSymName {
			return c.Text(source)
		}
	}
	return n.Text(source)
}

// metaChildren returns a sym_lit's leading meta_lit children, the
// "sym_lit with meta_lit children" case of readKW's attachment rules: a
// `^tag` immediately followed by a symbol is fused into one node by the
// reader rather than left as a standalone meta_lit.
func metaChildren(n cst.Node) []cst.Node {
	if n.Kind() != cst.KindSymLit {
		return nil
	}
	var out []cst.Node
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c.Kind() != cst.KindMetaLit {
			break
		}
		out = append(out, c)
	}
	return out
}

// headSymbol returns the text of the first non-extra child of a list_lit
// or vec_lit node — the symbol that dispatches the form.
func headSymbol(n cst.Node, source string) (string, cst.Node, bool) {
	first := cst.FirstNotExtraAllowDocs(n, source)
	if first == nil {
		return "", nil, false
	}
	return symText(first, source), first, true
}

// listHeadIsID reports whether n is a list_lit whose head symbol is "id".
func listHeadIsID(n cst.Node, source string) bool {
	if n.Kind() != cst.KindListLit {
		return false
	}
	head, _, ok := headSymbol(n, source)
	return ok && head == "id"
}

// unquote strips the surrounding double quotes from a str_lit's text.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func parseU32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
