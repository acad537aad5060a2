// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package store implements the columnar, id-keyed arena that backs a
// compiled schema: one growable column per entity kind plus a parallel
// column of Spans, append-only during parsing, read by non-owning value
// copies afterwards.
package store

import (
	"github.com/criloz/primalrpc/internal/ids"
)

// Package is a value-owning container for every entity the evaluator
// produces. Creation is NewPackage(); mutation happens exclusively through
// the Add*/Set*/Intern* methods below, called only from internal/eval
// during a parse session; readers call the typed accessor methods and
// receive each entity by value. Slice fields inside a returned entity, and
// the slice Definitions returns, share backing storage with the Package.
type Package struct {
	shapes     []Shape
	shapeSpans []Span

	enumerations     []Enumeration
	enumerationSpans []Span
	enumerationShape []ids.ShapeID

	enumVariants     []EnumVariant
	enumVariantSpans []Span

	evolveTracks []EvolveTrack
	evolveSpans  []Span

	structs     []Struct
	structSpans []Span

	fields     []Field
	fieldSpans []Span

	keys     []Key
	keySpans []Span

	idents     []Ident
	identSpans []Span

	strings     []string
	stringSpans []Span

	docs []string

	sources []Source

	definitions     []Definition
	definitionSpans []Span

	litTags      []Tag
	litTagSpans  []Span
	litTagIntern []ids.InternedTagID

	tagInterner    *tagInterner
	nextCompilerID uint32
}

// NewPackage returns an empty Package ready for a single parse session.
func NewPackage() *Package {
	return &Package{tagInterner: newTagInterner()}
}

// NewCompilerID assigns the next process-stable CompilerID. Compiler
// identity has no storage column of its own — it is a value, not an
// index — so this is a plain counter rather than an Add* append.
func (p *Package) NewCompilerID() ids.CompilerID {
	p.nextCompilerID++
	return ids.CompilerID(p.nextCompilerID)
}

// --- Shape -------------------------------------------------------------

// AddShape appends a new Shape and returns its id. The evaluator mutates
// the returned Shape in place via SetShape as its identity/name fields are
// discovered, before it is ready for generation.
func (p *Package) AddShape(span Span, shape Shape) ids.ShapeID {
	p.shapes = append(p.shapes, shape)
	p.shapeSpans = append(p.shapeSpans, span)
	return ids.ShapeID(len(p.shapes))
}

// SetShape overwrites the Shape at id, used to flip IsReady once an enum's
// identity/name fields are fully populated.
func (p *Package) SetShape(id ids.ShapeID, shape Shape) {
	if !id.Valid() || int(id) > len(p.shapes) {
		return
	}
	p.shapes[id-1] = shape
}

// Shape is the typed accessor for ids.ShapeID -> Shape.
func (p *Package) Shape(id ids.ShapeID) (Shape, bool) {
	if !id.Valid() || int(id) > len(p.shapes) {
		return Shape{}, false
	}
	return p.shapes[id-1], true
}

// ShapeSpan returns the Span recorded for a ShapeID.
func (p *Package) ShapeSpan(id ids.ShapeID) (Span, bool) {
	if !id.Valid() || int(id) > len(p.shapeSpans) {
		return Span{}, false
	}
	return p.shapeSpans[id-1], true
}

// --- Enumeration ---------------------------------------------------------

// AddEnumeration appends an Enumeration bound to the given ShapeID and
// returns the new EnumID.
func (p *Package) AddEnumeration(span Span, shapeID ids.ShapeID, enum Enumeration) ids.EnumID {
	p.enumerations = append(p.enumerations, enum)
	p.enumerationSpans = append(p.enumerationSpans, span)
	p.enumerationShape = append(p.enumerationShape, shapeID)
	return ids.EnumID(len(p.enumerations))
}

// SetEnumeration overwrites the Enumeration at id, used to patch in the
// evolve id once the declaring def's (id ...) argument has been evaluated.
func (p *Package) SetEnumeration(id ids.EnumID, enum Enumeration) {
	if !id.Valid() || int(id) > len(p.enumerations) {
		return
	}
	p.enumerations[id-1] = enum
}

// Enumeration is the typed accessor for ids.EnumID -> Enumeration.
func (p *Package) Enumeration(id ids.EnumID) (Enumeration, bool) {
	if !id.Valid() || int(id) > len(p.enumerations) {
		return Enumeration{}, false
	}
	return p.enumerations[id-1], true
}

// EnumerationShape is the cross-column accessor from an EnumID to the
// ShapeID of the shape it declares.
func (p *Package) EnumerationShape(id ids.EnumID) (ids.ShapeID, bool) {
	if !id.Valid() || int(id) > len(p.enumerationShape) {
		return 0, false
	}
	return p.enumerationShape[id-1], true
}

// --- EnumVariant -----------------------------------------------------------

// AddEnumVariant appends an EnumVariant and returns its id.
func (p *Package) AddEnumVariant(span Span, variant EnumVariant) ids.EnumVariantID {
	p.enumVariants = append(p.enumVariants, variant)
	p.enumVariantSpans = append(p.enumVariantSpans, span)
	return ids.EnumVariantID(len(p.enumVariants))
}

// EnumVariant is the typed accessor for ids.EnumVariantID -> EnumVariant.
func (p *Package) EnumVariant(id ids.EnumVariantID) (EnumVariant, bool) {
	if !id.Valid() || int(id) > len(p.enumVariants) {
		return EnumVariant{}, false
	}
	return p.enumVariants[id-1], true
}

// --- EvolveTrack -----------------------------------------------------------

// AddEvolveTrack appends an EvolveTrack and returns its new EvolveID.
func (p *Package) AddEvolveTrack(span Span, track EvolveTrack) ids.EvolveID {
	p.evolveTracks = append(p.evolveTracks, track)
	p.evolveSpans = append(p.evolveSpans, span)
	return ids.EvolveID(len(p.evolveTracks))
}

// EvolveTrack is the typed accessor for ids.EvolveID -> EvolveTrack.
func (p *Package) EvolveTrack(id ids.EvolveID) (EvolveTrack, bool) {
	if !id.Valid() || int(id) > len(p.evolveTracks) {
		return EvolveTrack{}, false
	}
	return p.evolveTracks[id-1], true
}

// EvolveSpan returns the Span recorded for an EvolveID.
func (p *Package) EvolveSpan(id ids.EvolveID) (Span, bool) {
	if !id.Valid() || int(id) > len(p.evolveSpans) {
		return Span{}, false
	}
	return p.evolveSpans[id-1], true
}

// --- Struct ------------------------------------------------------------

func (p *Package) AddStruct(span Span, s Struct) ids.StructID {
	p.structs = append(p.structs, s)
	p.structSpans = append(p.structSpans, span)
	return ids.StructID(len(p.structs))
}

func (p *Package) Struct(id ids.StructID) (Struct, bool) {
	if !id.Valid() || int(id) > len(p.structs) {
		return Struct{}, false
	}
	return p.structs[id-1], true
}

// --- Field ---------------------------------------------------------------

func (p *Package) AddField(span Span, f Field) ids.FileID {
	p.fields = append(p.fields, f)
	p.fieldSpans = append(p.fieldSpans, span)
	return ids.FileID(len(p.fields))
}

func (p *Package) Field(id ids.FileID) (Field, bool) {
	if !id.Valid() || int(id) > len(p.fields) {
		return Field{}, false
	}
	return p.fields[id-1], true
}

// --- Key -------------------------------------------------------------------

func (p *Package) AddKey(span Span, k Key) ids.KeyID {
	p.keys = append(p.keys, k)
	p.keySpans = append(p.keySpans, span)
	return ids.KeyID(len(p.keys))
}

func (p *Package) Key(id ids.KeyID) (Key, bool) {
	if !id.Valid() || int(id) > len(p.keys) {
		return Key{}, false
	}
	return p.keys[id-1], true
}

// --- Ident -------------------------------------------------------------

func (p *Package) AddIdent(span Span, i Ident) ids.IdentID {
	p.idents = append(p.idents, i)
	p.identSpans = append(p.identSpans, span)
	return ids.IdentID(len(p.idents))
}

func (p *Package) Ident(id ids.IdentID) (Ident, bool) {
	if !id.Valid() || int(id) > len(p.idents) {
		return Ident{}, false
	}
	return p.idents[id-1], true
}

// --- string literals ---------------------------------------------------

func (p *Package) AddString(span Span, s string) ids.StringID {
	p.strings = append(p.strings, s)
	p.stringSpans = append(p.stringSpans, span)
	return ids.StringID(len(p.strings))
}

func (p *Package) String(id ids.StringID) (string, bool) {
	if !id.Valid() || int(id) > len(p.strings) {
		return "", false
	}
	return p.strings[id-1], true
}

// --- doc comments --------------------------------------------------------

// AddDoc appends a documentation string and returns its DocID.
func (p *Package) AddDoc(text string) ids.DocID {
	p.docs = append(p.docs, text)
	return ids.DocID(len(p.docs))
}

func (p *Package) Doc(id ids.DocID) (string, bool) {
	if !id.Valid() || int(id) > len(p.docs) {
		return "", false
	}
	return p.docs[id-1], true
}

// --- sources ---------------------------------------------------------------

// AddSource records a Source and returns its SourceID.
func (p *Package) AddSource(s Source) ids.SourceID {
	p.sources = append(p.sources, s)
	return ids.SourceID(len(p.sources))
}

func (p *Package) Source(id ids.SourceID) (Source, bool) {
	if !id.Valid() || int(id) > len(p.sources) {
		return Source{}, false
	}
	return p.sources[id-1], true
}

// --- definitions -----------------------------------------------------------

// AddDefinition records a top-level `(def ...)` binding.
func (p *Package) AddDefinition(span Span, d Definition) {
	p.definitions = append(p.definitions, d)
	p.definitionSpans = append(p.definitionSpans, span)
}

func (p *Package) Definitions() []Definition {
	return p.definitions
}

// --- tags --------------------------------------------------------------

// InternTag interns a tag's textual name, returning the InternedTagID
// shared by every literal occurrence of that name.
func (p *Package) InternTag(name string) ids.InternedTagID {
	return ids.InternedTagID(p.tagInterner.intern(name))
}

// InternedTagName resolves an InternedTagID back to its textual name.
func (p *Package) InternedTagName(id ids.InternedTagID) (string, bool) {
	return p.tagInterner.name(uint32(id))
}

// AddTag records a literal tag occurrence (its own Span, distinct from the
// interned symbol it names) and returns its TagID.
func (p *Package) AddTag(span Span, t Tag, name string) ids.TagID {
	interned := p.InternTag(name)
	p.litTags = append(p.litTags, t)
	p.litTagSpans = append(p.litTagSpans, span)
	p.litTagIntern = append(p.litTagIntern, interned)
	return ids.TagID(len(p.litTags))
}

func (p *Package) Tag(id ids.TagID) (Tag, bool) {
	if !id.Valid() || int(id) > len(p.litTags) {
		return Tag{}, false
	}
	return p.litTags[id-1], true
}

// TagName resolves a literal TagID to the interned name it refers to.
func (p *Package) TagName(id ids.TagID) (string, bool) {
	if !id.Valid() || int(id) > len(p.litTagIntern) {
		return "", false
	}
	return p.InternedTagName(p.litTagIntern[id-1])
}

// --- cross-column accessors --------------------------------------------

// EnumShape is the ShapeID-returning typed lookup from an EnumID to the
// ShapeID of the shape it declares.
func EnumShape(pkg *Package, id ids.EnumID) (ids.ShapeID, bool) {
	return pkg.EnumerationShape(id)
}
