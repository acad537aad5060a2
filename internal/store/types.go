// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import "github.com/criloz/primalrpc/internal/ids"

// Span locates a node's byte range within a source document.
type Span struct {
	SourceID ids.SourceID
	Start    uint32
	End      uint32
}

// Shape is the schema-visible face of a declared entity. An emitted Shape
// must have CompilerID, a non-empty CrossSchemaID, Name set, and IsReady
// true; eventgen asserts this before it will generate events for it.
type Shape struct {
	Name          string
	HasName       bool
	HasCompilerID bool
	CompilerID    ids.CompilerID
	CrossSchemaID []Segment
	DerivedTrace  []ids.CompilerID
	IsReady       bool
}

// EnumerationKind discriminates the two Enumeration forms.
type EnumerationKind int

const (
	EnumElementary EnumerationKind = iota
	EnumDiscriminantUnion
)

// Enumeration is either Elementary (unit variants only) or
// DiscriminantUnion (variants carry data, discriminated by a tag field).
// DiscriminantUnion generation is reserved, but the shape is modeled in
// full so `:tag`/`:content` recognition has somewhere to land.
type Enumeration struct {
	Kind EnumerationKind

	// Elementary fields.
	EvolveID   ids.EvolveID
	Variants   []ids.EnumVariantID
	HasDefault bool
	Default    ids.EnumVariantID
	Docs       []ids.DocID
	Tags       []ids.TagID

	// DiscriminantUnion fields.
	TagField      ids.StructID
	UnionVariants []ids.EnumVariantID
}

// VariantKind discriminates the three shapes an EnumVariant's payload can
// take.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantType
	VariantNamed
)

// TypeRefKind discriminates the three forms a type reference can take.
type TypeRefKind int

const (
	TypeRefRef TypeRefKind = iota
	TypeRefStruct
	TypeRefEnum
)

// TypeRef models a field or variant's declared type: a reference to
// another shape, an inline struct, or an inline enum.
type TypeRef struct {
	Kind   TypeRefKind
	Ref    ids.RefID
	Struct ids.StructID
	Enum   ids.EnumID
}

// VariantNameKind discriminates a variant name sourced from the parsed
// document versus one synthesized by a generator.
type VariantNameKind int

const (
	VariantNameFromAST VariantNameKind = iota
	VariantNameGenerated
)

// VariantName is an enum variant's display name.
type VariantName struct {
	Kind      VariantNameKind
	KeyID     ids.KeyID
	Generated string
}

func VariantNameFromKey(key ids.KeyID) VariantName {
	return VariantName{Kind: VariantNameFromAST, KeyID: key}
}

func GeneratedVariantName(name string) VariantName {
	return VariantName{Kind: VariantNameGenerated, Generated: name}
}

// EnumVariant is a single variant of an Enumeration.
type EnumVariant struct {
	LocalID       ids.EvolveID
	HasCompilerID bool
	CompilerID    ids.CompilerID
	CrossSchemaID []Segment
	DerivedTrace  []ids.CompilerID
	Name          VariantName
	Tags          []ids.TagID
	Docs          []ids.DocID
	Kind          VariantKind
	Type          TypeRef      // meaningful when Kind == VariantType
	Named         ids.StructID // meaningful when Kind == VariantNamed
}

// StructKind discriminates the three Struct shapes.
type StructKind int

const (
	StructPlain StructKind = iota
	StructAlternation
	StructSum
)

// StructDef is a plain field-carrying struct body.
type StructDef struct {
	Docs   []ids.DocID
	Fields []ids.KeyID
}

// Struct is a plain field list, or a pairwise alternation/sum of two other
// structs (reserved for downstream typed payloads).
type Struct struct {
	Kind  StructKind
	Plain StructDef
	A, B  ids.StructID
}

// DefaultKind discriminates a field's default: derived, or an explicit
// value.
type DefaultKind int

const (
	DefaultDerive DefaultKind = iota
	DefaultValue
)

// Value is an uninhabited placeholder for typed field defaults: it has no
// constructible form today, so a Default can only ever carry Kind ==
// DefaultDerive until typed payloads are implemented. Keeping the type
// around lets Default's shape stay stable across that future addition.
type Value struct{}

// Default is a Field's default value descriptor.
type Default struct {
	Kind  DefaultKind
	Value Value
}

// Field is a single named, typed slot of a Struct.
type Field struct {
	Key        ids.KeyID
	Type       TypeRef
	HasDefault bool
	Default    Default
	Tags       []ids.TagID
}

// Key is a dotted/segmented field path.
type Key struct {
	Segments []string
}

// Ident is an interned identifier's literal text.
type Ident struct {
	Value string
}

// SourceKind discriminates where a Source's content came from.
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceMemory
)

// Source describes the provenance of a parsed document. File discovery and
// workspace layout are a caller's concern; Source only records which kind
// of provenance a SourceID names.
type Source struct {
	Kind       SourceKind
	Path       string
	Identifier string
}

// TagKind discriminates a literal tag occurrence's shape.
type TagKind int

const (
	TagWord TagKind = iota
	TagDefault
)

// Tag is a literal `^tag` meta occurrence lowered onto the form it
// annotates.
type Tag struct {
	Kind    TagKind
	Word    string
	Default Default
}

// Definition binds a top-level `(def NAME (id ...) (resource ...))` form to
// its declaring source.
type Definition struct {
	Name     string
	EvolveID ids.EvolveID
	Resource ids.Resource
	SourceID ids.SourceID
}
