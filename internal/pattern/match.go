// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package pattern

import "github.com/criloz/primalrpc/internal/event"

// Match reports whether the ordered list of child tags for some branch
// node conforms to p. It matches greedily over the small combinator set
// (+, ?, |, sequence) and does not backtrack: (+ P) and (? P) consume as
// many children as P accepts, and (| ...) commits to the first alternative
// that matches. A pattern whose later term needs a child an earlier term
// already consumed, such as "(+ _) String", therefore does not match.
func Match(p *Pattern, children []event.Tag) bool {
	if p == nil || p.ValuePattern == nil {
		return len(children) == 0
	}
	ok, rest := matchNode(p.ValuePattern, children)
	return ok && len(rest) == 0
}

// matchNode attempts to match n against a prefix of children, returning
// whether it succeeded and the remaining unconsumed tags.
func matchNode(n *Node, children []event.Tag) (bool, []event.Tag) {
	switch n.Kind {
	case NodeAny:
		if len(children) == 0 {
			return false, children
		}
		return true, children[1:]
	case NodeAtom:
		if len(children) == 0 || children[0] != n.Tag {
			return false, children
		}
		return true, children[1:]
	case NodeSeq:
		rest := children
		for _, c := range n.Children {
			ok, r := matchNode(c, rest)
			if !ok {
				return false, children
			}
			rest = r
		}
		return true, rest
	case NodeOptional:
		if len(n.Children) == 0 {
			return true, children
		}
		ok, rest := matchNode(n.Children[0], children)
		if ok {
			return true, rest
		}
		return true, children
	case NodeOneOrMore:
		if len(n.Children) == 0 {
			return true, children
		}
		count := 0
		rest := children
		for {
			ok, r := matchNode(n.Children[0], rest)
			if !ok {
				break
			}
			rest = r
			count++
		}
		return count >= 1, rest
	case NodeAlternation:
		for _, alt := range n.Children {
			if ok, rest := matchNode(alt, children); ok {
				return true, rest
			}
		}
		return false, children
	default:
		return false, children
	}
}
