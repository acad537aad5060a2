// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package ids defines the one-based, non-zero identifier types that index
// into a store.Package's columnar storage. The zero value of every id type
// means "absent", so a zero-value Go struct is always a safe, absent
// default instead of a trap.
package ids

// SourceID identifies a single parsed source document for diagnostics.
type SourceID uint32

// Valid reports whether the id refers to a real slot (non-zero).
func (id SourceID) Valid() bool { return id != 0 }

// ShapeID indexes into Package.shapes.
type ShapeID uint32

func (id ShapeID) Valid() bool { return id != 0 }

// EnumID indexes into Package.enumerations.
type EnumID uint32

func (id EnumID) Valid() bool { return id != 0 }

// EnumVariantID indexes into Package.enumVariants.
type EnumVariantID uint32

func (id EnumVariantID) Valid() bool { return id != 0 }

// EvolveID indexes into Package.evolveTracks.
type EvolveID uint32

func (id EvolveID) Valid() bool { return id != 0 }

// CompilerID is a process-assigned stable identity; it is a value, not a
// store index (there is no "compiler id" column to look up), but it is kept
// here alongside the other id types because it shares their non-zero,
// one-based convention.
type CompilerID uint32

func (id CompilerID) Valid() bool { return id != 0 }

// TagID indexes into Package.litTags (a literal tag occurrence, with its own
// Span, distinct from the interned tag symbol it names).
type TagID uint32

func (id TagID) Valid() bool { return id != 0 }

// InternedTagID indexes into the tag interner's name table (the logical tag
// symbol shared by every literal occurrence of the same name).
type InternedTagID uint32

func (id InternedTagID) Valid() bool { return id != 0 }

// KeyID indexes into Package.keys.
type KeyID uint32

func (id KeyID) Valid() bool { return id != 0 }

// IdentID indexes into Package.idents.
type IdentID uint32

func (id IdentID) Valid() bool { return id != 0 }

// RefID names a reference to another declared shape, as carried by
// store.TypeRef. Package has no column of references to look one up in.
type RefID uint32

func (id RefID) Valid() bool { return id != 0 }

// FileID indexes into Package.fields: Package.AddField returns one and
// Package.Field looks one up. (Package.sources is indexed by SourceID.)
type FileID uint32

func (id FileID) Valid() bool { return id != 0 }

// StringID indexes into Package.strings (an interned string literal).
type StringID uint32

func (id StringID) Valid() bool { return id != 0 }

// TypeID names a declared type, as carried by Resource. Package has no
// column of types to look one up in.
type TypeID uint32

func (id TypeID) Valid() bool { return id != 0 }

// StructID indexes into Package.structs.
type StructID uint32

func (id StructID) Valid() bool { return id != 0 }

// DocID indexes into Package.docs (a single documentation string).
type DocID uint32

func (id DocID) Valid() bool { return id != 0 }

// ResourceKind names the kind of value a Resource carries. Code that
// receives a Resource dispatches on it, and diagnostics such as "expected
// id, got enum" name it.
type ResourceKind string

const (
	ResourceSource      ResourceKind = "source"
	ResourceEnumVariant ResourceKind = "enum_variant"
	ResourceIdent       ResourceKind = "ident"
	ResourceKey         ResourceKind = "key"
	ResourceRef         ResourceKind = "ref"
	ResourceField       ResourceKind = "field"
	ResourceStringLit   ResourceKind = "string_lit"
	ResourceType        ResourceKind = "type"
	ResourceStruct      ResourceKind = "struct"
	ResourceEnum        ResourceKind = "enum"
	ResourceTag         ResourceKind = "tag"
	ResourceEvolveID    ResourceKind = "id"
)

// Resource is the result of evaluating a form: exactly one of its id fields
// is populated, named by Kind. Dispatch is always by Kind; only the
// accessor it names is meaningful.
type Resource struct {
	Kind      ResourceKind
	SourceID  SourceID
	EnumVarID EnumVariantID
	IdentID   IdentID
	KeyID     KeyID
	RefID     RefID
	FileID    FileID
	StringID  StringID
	TypeID    TypeID
	StructID  StructID
	EnumID    EnumID
	TagID     TagID
	EvolveID  EvolveID
}

// EvolveResource wraps an EvolveID into a Resource, the return shape of the
// `(id ...)` form.
func EvolveResource(id EvolveID) Resource {
	return Resource{Kind: ResourceEvolveID, EvolveID: id}
}

// EnumResource wraps an EnumID into a Resource, the return shape of
// `(enum ...)`.
func EnumResource(id EnumID) Resource {
	return Resource{Kind: ResourceEnum, EnumID: id}
}
