// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package reader

import (
	"fmt"

	"github.com/criloz/primalrpc/internal/cst"
)

// Parse builds the full concrete syntax tree for source: one synthetic
// top-level node (kind "source") whose children are every top-level
// list_lit form, in order.
func Parse(source string) (cst.Node, error) {
	s := newScanner(source)
	var top []*node
	for {
		tok, ok := s.peekToken()
		if !ok {
			break
		}
		switch tok.kind {
		case tokLParen:
			n, err := buildList(s)
			if err != nil {
				return nil, err
			}
			top = append(top, n)
		case tokComment:
			s.consumeToken()
			top = append(top, leaf(cst.KindComment, tok))
		default:
			return nil, fmt.Errorf("reader: unexpected top-level token at %d:%d", tok.row+1, tok.col+1)
		}
	}
	return &node{kind: "source", children: top}, nil
}

// peekToken reports the next token without consuming it: the tree builder
// needs to look ahead before deciding how to group meta/symbol runs and
// before deciding whether a list/vector has ended.
func (s *scanner) peekToken() (token, bool) {
	// scanner itself has no buffering, so the lookahead runs next() on a
	// throwaway copy and leaves the real scanner's position unchanged.
	cp := *s
	return cp.next()
}

func (s *scanner) consumeToken() (token, bool) {
	return s.next()
}

func buildList(s *scanner) (*node, error) {
	openTok, _ := s.consumeToken() // tokLParen
	openLeaf := leaf(cst.KindLParen, openTok)
	children := []*node{openLeaf}

	for {
		tok, ok := s.peekToken()
		if !ok {
			return nil, fmt.Errorf("reader: unterminated list starting at %d:%d", openTok.row+1, openTok.col+1)
		}
		if tok.kind == tokRParen {
			s.consumeToken()
			children = append(children, leaf(cst.KindRParen, tok))
			break
		}
		child, err := buildOne(s)
		if err != nil {
			return nil, err
		}
		children = append(children, child...)
	}
	last := children[len(children)-1]
	return &node{kind: cst.KindListLit, start: openLeaf.start, end: last.end, row: openTok.row, col: openTok.col, children: children}, nil
}

func buildVec(s *scanner) (*node, error) {
	openTok, _ := s.consumeToken() // tokLBracket
	openLeaf := leaf(cst.KindLBracket, openTok)
	children := []*node{openLeaf}

	for {
		tok, ok := s.peekToken()
		if !ok {
			return nil, fmt.Errorf("reader: unterminated vector starting at %d:%d", openTok.row+1, openTok.col+1)
		}
		if tok.kind == tokRBracket {
			s.consumeToken()
			children = append(children, leaf(cst.KindRBracket, tok))
			break
		}
		child, err := buildOne(s)
		if err != nil {
			return nil, err
		}
		children = append(children, child...)
	}
	last := children[len(children)-1]
	return &node{kind: cst.KindVecLit, start: openLeaf.start, end: last.end, row: openTok.row, col: openTok.col, children: children}, nil
}

// buildOne consumes one grammar unit starting at the scanner's current
// position and returns the one or more cst nodes it produces (normally
// one, except a run of meta tokens not followed by a symbol, which flush
// as standalone meta_lit leaves).
func buildOne(s *scanner) ([]*node, error) {
	tok, _ := s.peekToken()
	switch tok.kind {
	case tokLParen:
		n, err := buildList(s)
		if err != nil {
			return nil, err
		}
		return []*node{n}, nil
	case tokLBracket:
		n, err := buildVec(s)
		if err != nil {
			return nil, err
		}
		return []*node{n}, nil
	case tokComment:
		s.consumeToken()
		return []*node{leaf(cst.KindComment, tok)}, nil
	case tokKeyword:
		s.consumeToken()
		return []*node{leaf(cst.KindKwdLit, tok)}, nil
	case tokString:
		s.consumeToken()
		return []*node{leaf(cst.KindStrLit, tok)}, nil
	case tokNumber:
		s.consumeToken()
		return []*node{leaf(cst.KindNumLit, tok)}, nil
	case tokSymbol:
		s.consumeToken()
		nameLeaf := leaf(cst.KindSymName, tok)
		sym := &node{kind: cst.KindSymLit, start: nameLeaf.start, end: nameLeaf.end, row: tok.row, col: tok.col, children: []*node{nameLeaf}}
		return []*node{sym}, nil
	case tokMeta:
		return buildMetaRun(s)
	default:
		return nil, fmt.Errorf("reader: unrecognized token at %d:%d", tok.row+1, tok.col+1)
	}
}

// buildMetaRun consumes one or more consecutive meta tokens. If they are
// immediately followed by a symbol, the run and the symbol become a single
// sym_lit node (meta_lit children, then a trailing sym_name) — the shape
// the evaluator's floating-attribute linearizer recognizes. Otherwise the
// meta tokens are returned as standalone meta_lit leaves.
func buildMetaRun(s *scanner) ([]*node, error) {
	var metas []*node
	for {
		tok, ok := s.peekToken()
		if !ok || tok.kind != tokMeta {
			break
		}
		s.consumeToken()
		metas = append(metas, leaf(cst.KindMetaLit, tok))
	}
	tok, ok := s.peekToken()
	if ok && tok.kind == tokSymbol {
		s.consumeToken()
		nameLeaf := leaf(cst.KindSymName, tok)
		children := append(append([]*node{}, metas...), nameLeaf)
		first := children[0]
		return []*node{{kind: cst.KindSymLit, start: first.start, end: nameLeaf.end, row: first.row, col: first.col, children: children}}, nil
	}
	out := make([]*node, len(metas))
	copy(out, metas)
	return out, nil
}
