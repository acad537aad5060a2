// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import "github.com/google/uuid"

// SegmentKind discriminates the three shapes a cross-schema identity path
// element can take.
type SegmentKind int

const (
	SegmentU32 SegmentKind = iota
	SegmentUUID
	SegmentString
)

// Segment is one element of a cross-schema id path: a small, ordered
// sequence of u32, UUID, or string segments that together identify a shape
// stably across schema revisions. Only the field matching Kind is
// meaningful; the constructors below are the only supported way to build
// one so a caller can never end up with a mismatched Kind/value pair.
type Segment struct {
	Kind SegmentKind
	U32  uint32
	UUID uuid.UUID
	Str  string
}

func U32Segment(v uint32) Segment     { return Segment{Kind: SegmentU32, U32: v} }
func UUIDSegment(v uuid.UUID) Segment { return Segment{Kind: SegmentUUID, UUID: v} }
func StringSegment(v string) Segment  { return Segment{Kind: SegmentString, Str: v} }

// EvolveTrackKind discriminates the two forms of author-supplied evolution
// identity.
type EvolveTrackKind int

const (
	EvolveLocal EvolveTrackKind = iota
	EvolveUUID
)

// EvolveTrack is the payload an ids.EvolveID resolves to: either a local,
// declaration-scoped u32, or a globally-scoped UUID.
type EvolveTrack struct {
	Kind  EvolveTrackKind
	Local uint32
	UUID  uuid.UUID
}

func LocalEvolveTrack(v uint32) EvolveTrack { return EvolveTrack{Kind: EvolveLocal, Local: v} }
func UUIDEvolveTrack(v uuid.UUID) EvolveTrack {
	return EvolveTrack{Kind: EvolveUUID, UUID: v}
}
