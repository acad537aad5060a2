// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package eventgen walks a store.Package and produces a DFS post-order
// event stream conforming to the grammar internal/event/internal/pattern
// describe. Generation is expressed as Go 1.23 range-over-func iterators
// (iter.Seq), so a caller can pull one event at a time and stop early
// without the generator doing any work past the last event it consumes.
package eventgen

import "github.com/criloz/primalrpc/internal/event"

// EventKind discriminates a Leaf (terminal, payload-carrying) event from a
// Branch (interior, closes-after-children) event.
type EventKind int

const (
	Leaf EventKind = iota
	Branch
)

// Event is one tag-only token of the stream; terminal payloads live in the
// sidecar Context instead, keyed by tag, so the stream itself stays
// polymorphic over payload shape.
type Event struct {
	Kind       EventKind
	Tag        event.Tag
	ChildCount int
}

// Context is the sidecar EventGenerationContext: one typed arena per
// terminal payload shape. A Leaf{Tag: event.U32} event is always preceded
// by exactly one append to U32; a Leaf{Tag: event.String} or
// Leaf{Tag: event.EnumVariantName} event is always preceded by exactly one
// append to Strings.
type Context struct {
	U32     []uint32
	Strings []string
}

// NewContext returns an empty Context for a single generation run. The
// context is exclusively mutated by the active generator and is scoped to
// that run: dropping the generator mid-stream (the caller simply stops
// ranging) leaves it in a valid, if incomplete, prefix state and it is
// discarded rather than reused.
func NewContext() *Context {
	return &Context{}
}
