// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package pattern parses the small s-expression grammar language used to
// describe and validate the shape of event subtrees: atoms are tag names
// or "_" (any node), combined with (+ P) one-or-more, (? P) optional,
// (| A B ...) alternation, and bare juxtaposition for an ordered sequence.
package pattern

import (
	"fmt"
	"strings"

	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/event"
)

// NodeKind discriminates the compiled pattern-tree node shapes.
type NodeKind int

const (
	NodeAtom NodeKind = iota
	NodeAny
	NodeSeq
	NodeOneOrMore
	NodeOptional
	NodeAlternation
)

// Node is one compiled pattern AST node. Atom nodes name a resolved
// event.Tag; Any matches any single node; the remaining kinds combine
// child Nodes.
type Node struct {
	Kind     NodeKind
	Tag      event.Tag
	Children []*Node
}

// Pattern is a compiled grammar string. ChildCount is the number of
// top-level terms; Tag lists the tags of those top-level terms that are
// plain atoms, so it can be shorter than ChildCount; OrderedChildren is
// always true; ValuePattern holds the full compiled tree Match walks; and
// Doc preserves the original string for diagnostics.
type Pattern struct {
	ChildCount      int
	Tag             []event.Tag
	OrderedChildren bool
	ValuePattern    *Node
	Doc             string
}

// Parse compiles a grammar string (as returned by event.Tag.Pattern) into
// a Pattern. An empty string denotes a terminal tag's empty pattern. An
// unknown tag name is a *diag.SyntaxError of kind UndefinedSymbol; other
// malformed grammar fails with a plain error.
func Parse(grammar string) (*Pattern, error) {
	grammar = strings.TrimSpace(grammar)
	if grammar == "" {
		return &Pattern{OrderedChildren: true, Doc: grammar}, nil
	}
	toks := tokenize(grammar)
	p := &tparser{toks: toks}
	seq, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("pattern: unexpected trailing tokens in %q", grammar)
	}
	root := &Node{Kind: NodeSeq, Children: seq}
	var tags []event.Tag
	for _, c := range seq {
		if c.Kind == NodeAtom {
			tags = append(tags, c.Tag)
		}
	}
	return &Pattern{
		ChildCount:      len(seq),
		Tag:             tags,
		OrderedChildren: true,
		ValuePattern:    root,
		Doc:             grammar,
	}, nil
}

// --- tokenizer -----------------------------------------------------------

type ptoken struct {
	text string
}

func tokenize(s string) []ptoken {
	var out []ptoken
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(' || c == ')':
			out = append(out, ptoken{text: string(c)})
			i++
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '\n' && s[j] != '(' && s[j] != ')' {
				j++
			}
			out = append(out, ptoken{text: s[i:j]})
			i = j
		}
	}
	return out
}

// --- recursive-descent parser --------------------------------------------

type tparser struct {
	toks []ptoken
	pos  int
}

func (p *tparser) peek() (ptoken, bool) {
	if p.pos >= len(p.toks) {
		return ptoken{}, false
	}
	return p.toks[p.pos], true
}

func (p *tparser) advance() ptoken {
	t := p.toks[p.pos]
	p.pos++
	return t
}

// parseSequence reads zero or more juxtaposed pattern terms until a
// closing paren or end of input.
func (p *tparser) parseSequence() ([]*Node, error) {
	var out []*Node
	for {
		t, ok := p.peek()
		if !ok || t.text == ")" {
			return out, nil
		}
		n, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func (p *tparser) parseTerm() (*Node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("pattern: unexpected end of input")
	}
	if t.text == "(" {
		p.advance()
		head, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("pattern: unexpected end after '('")
		}
		switch head.text {
		case "+":
			p.advance()
			inner, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			if err := p.expectClose(); err != nil {
				return nil, err
			}
			return &Node{Kind: NodeOneOrMore, Children: wrap(inner)}, nil
		case "?":
			p.advance()
			inner, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			if err := p.expectClose(); err != nil {
				return nil, err
			}
			return &Node{Kind: NodeOptional, Children: wrap(inner)}, nil
		case "|":
			p.advance()
			var alts []*Node
			for {
				tk, ok := p.peek()
				if !ok {
					return nil, fmt.Errorf("pattern: unterminated alternation")
				}
				if tk.text == ")" {
					break
				}
				n, err := p.parseTerm()
				if err != nil {
					return nil, err
				}
				alts = append(alts, n)
			}
			if err := p.expectClose(); err != nil {
				return nil, err
			}
			return &Node{Kind: NodeAlternation, Children: alts}, nil
		default:
			inner, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			if err := p.expectClose(); err != nil {
				return nil, err
			}
			return &Node{Kind: NodeSeq, Children: inner}, nil
		}
	}
	p.advance()
	if t.text == "_" {
		return &Node{Kind: NodeAny}, nil
	}
	tag, ok := event.ByName(t.text)
	if !ok {
		return nil, &diag.SyntaxError{Kind: diag.UndefinedSymbol, Got: t.text}
	}
	return &Node{Kind: NodeAtom, Tag: tag}, nil
}

func (p *tparser) expectClose() error {
	t, ok := p.peek()
	if !ok || t.text != ")" {
		return fmt.Errorf("pattern: expected ')'")
	}
	p.advance()
	return nil
}

// wrap collapses a parsed sub-sequence to a single Node so (+ P) / (? P)
// combinators have exactly one child regardless of whether P was a single
// atom or a juxtaposed sequence.
func wrap(seq []*Node) []*Node {
	if len(seq) == 1 {
		return seq
	}
	return []*Node{{Kind: NodeSeq, Children: seq}}
}
