// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package store_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/criloz/primalrpc/internal/store"
)

func TestSegmentConstructors(t *testing.T) {
	u := store.U32Segment(42)
	assert.Equal(t, store.SegmentU32, u.Kind)
	assert.Equal(t, uint32(42), u.U32)

	id := uuid.New()
	uu := store.UUIDSegment(id)
	assert.Equal(t, store.SegmentUUID, uu.Kind)
	assert.Equal(t, id, uu.UUID)

	s := store.StringSegment("hello")
	assert.Equal(t, store.SegmentString, s.Kind)
	assert.Equal(t, "hello", s.Str)
}

func TestEvolveTrackConstructors(t *testing.T) {
	local := store.LocalEvolveTrack(9)
	assert.Equal(t, store.EvolveLocal, local.Kind)
	assert.Equal(t, uint32(9), local.Local)

	id := uuid.New()
	global := store.UUIDEvolveTrack(id)
	assert.Equal(t, store.EvolveUUID, global.Kind)
	assert.Equal(t, id, global.UUID)
}

func TestVariantNameConstructors(t *testing.T) {
	key := store.VariantNameFromKey(7)
	assert.Equal(t, store.VariantNameFromAST, key.Kind)
	assert.EqualValues(t, 7, key.KeyID)

	generated := store.GeneratedVariantName("Synthesized")
	assert.Equal(t, store.VariantNameGenerated, generated.Kind)
	assert.Equal(t, "Synthesized", generated.Generated)
}
