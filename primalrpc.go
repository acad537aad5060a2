// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package primalrpc is the public facade of the schema/IDL compiler front
// end: it parses s-expression source text into a normalized Package and
// linearizes a declared entity into a DFS post-order event stream for
// downstream code generators. Package discovery, CLI, I/O, and logging are
// a caller's concern; this package never touches a file system or writes
// to stdout/stderr.
package primalrpc

import (
	"iter"

	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/event"
	"github.com/criloz/primalrpc/internal/eval"
	"github.com/criloz/primalrpc/internal/eventgen"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/metrics"
	"github.com/criloz/primalrpc/internal/store"
)

// Re-exported types a consumer needs in order to hold a *Package and walk
// an emitted event stream, without reaching into internal/ itself.
type (
	// Package is the dense, arena-backed intermediate representation every
	// declared entity is normalized into.
	Package = store.Package

	// SourceID identifies a single parsed source document for diagnostics.
	SourceID = ids.SourceID

	// Resource is the result of evaluating a top-level `(def ...)` form's
	// declared shape — the root a caller passes to Generate.
	Resource = ids.Resource

	// EnumID indexes a declared enumeration inside a Package.
	EnumID = ids.EnumID

	// Tag is one of the closed set of event kinds a generation run emits.
	Tag = event.Tag

	// Event is one tag-only token of a generation run's DFS post-order
	// stream; terminal payloads live in the sidecar EventContext.
	Event = eventgen.Event

	// EventContext is the sidecar arena a generation run appends terminal
	// payloads to, one typed slice per payload shape.
	EventContext = eventgen.Context

	// SyntaxError is the error every semantic parse failure returns: a located,
	// possibly multi-location diagnostic naming every node that
	// contributed to the failure.
	SyntaxError = diag.SyntaxError

	// Metrics is an optional, nil-safe Prometheus collector for Parse and
	// Generate invocations.
	Metrics = metrics.Collector
)

// NewPackage returns an empty Package ready for a single parse session.
func NewPackage() *Package {
	return store.NewPackage()
}

// NewMetrics builds a Metrics collector; register it against a Prometheus
// registry with Metrics.MustRegister before passing it to ParseWithMetrics
// or GenerateWithMetrics, or omit it entirely by using Parse/Generate.
func NewMetrics() *Metrics {
	return metrics.New()
}

// Parse parses src as a single source document, identified by sourceID for
// diagnostics, and extends pkg with every declaration it finds. On a
// semantic failure it returns a *SyntaxError; source text the reader cannot
// build a tree from (an unterminated list, an unexpected token) fails with
// a plain error instead. pkg may hold a partial parse, since evaluation
// stops at the first error (spec's "first error wins").
func Parse(src []byte, sourceID SourceID, pkg *Package) error {
	return eval.ParseSource(src, sourceID, pkg)
}

// ParseWithMetrics is Parse, additionally recording the run's duration and
// outcome on mc.
func ParseWithMetrics(src []byte, sourceID SourceID, pkg *Package, mc *Metrics) error {
	return eval.ParseSourceWithMetrics(src, sourceID, pkg, mc)
}

// Generate walks pkg starting at res and returns the lazy, pull-driven DFS
// post-order event stream the resource's per-entity procedure emits,
// alongside the sidecar EventContext terminal payloads are appended to.
// The returned iter.Seq suspends after each event; a consumer that stops
// ranging early drops the generator without rolling back already-appended
// context entries.
//
// Ranging over the returned stream panics if res names an entity the
// evaluator did not finish populating (e.g. a Shape with IsReady == false),
// not the call to Generate itself — per spec, that is an
// invariant violation in the caller's own process, never a recoverable
// runtime condition reachable on a Package Parse produced successfully.
func Generate(pkg *Package, res Resource) (iter.Seq[Event], *EventContext) {
	ctx := eventgen.NewContext()
	return eventgen.Generate(ctx, pkg, res), ctx
}

// GenerateWithMetrics is Generate, additionally recording the run's start
// (labeled by resource kind) on mc.
func GenerateWithMetrics(pkg *Package, res Resource, mc *Metrics) (iter.Seq[Event], *EventContext) {
	ctx := eventgen.NewContext()
	return eventgen.GenerateWithMetrics(ctx, pkg, res, mc), ctx
}

// Definitions returns every top-level `(def ...)` binding pkg has recorded,
// in declaration order.
func Definitions(pkg *Package) []store.Definition {
	return pkg.Definitions()
}
