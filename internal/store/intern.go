// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

// internKey is a fixed, arbitrary 32-byte key for the HighwayHash folding
// used by the intern tables below. It only needs to be stable for the
// lifetime of a process — these hashes are never persisted or compared
// across runs — so a constant key (rather than one generated at startup) is
// fine and keeps hashing deterministic for tests.
var internKey = [32]byte{
	0x70, 0x72, 0x69, 0x6d, 0x61, 0x6c, 0x2d, 0x72,
	0x70, 0x63, 0x2d, 0x69, 0x6e, 0x74, 0x65, 0x72,
	0x6e, 0x2d, 0x74, 0x61, 0x62, 0x6c, 0x65, 0x2d,
	0x6b, 0x65, 0x79, 0x2d, 0x76, 0x31, 0x00, 0x00,
}

// foldString64 folds an interned string down to a 64-bit bucket key via
// HighwayHash, so the reverse-intern map only ever compares full strings
// within a bucket instead of on every probe. Package/enum/variant/tag
// vocabularies are small per document, but a schema compiler interns the
// same handful of tag and identifier names across thousands of
// declarations, so a cheap fold-then-compare pays for itself the same way
// it does in the inspector/indexer tools this pattern is grounded on.
func foldString64(s string) uint64 {
	sum := highwayhash.Sum64([]byte(s), internKey[:])
	return binary.LittleEndian.Uint64(sum[:8])
}

type internBucket[ID ~uint32] struct {
	name string
	id   ID
}

// tagInterner maps a tag's textual name to its InternedTagID, the logical
// symbol identity shared by every literal occurrence of that tag name.
type tagInterner struct {
	buckets map[uint64][]internBucket[uint32]
	names   []string // index 0 == InternedTagID 1
}

func newTagInterner() *tagInterner {
	return &tagInterner{buckets: make(map[uint64][]internBucket[uint32])}
}

// intern returns the InternedTagID for name, creating one if this is the
// first occurrence.
func (t *tagInterner) intern(name string) uint32 {
	key := foldString64(name)
	for _, b := range t.buckets[key] {
		if b.name == name {
			return b.id
		}
	}
	t.names = append(t.names, name)
	id := uint32(len(t.names))
	t.buckets[key] = append(t.buckets[key], internBucket[uint32]{name: name, id: id})
	return id
}

func (t *tagInterner) name(id uint32) (string, bool) {
	if id == 0 || int(id) > len(t.names) {
		return "", false
	}
	return t.names[id-1], true
}
