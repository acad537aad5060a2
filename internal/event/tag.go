// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package event defines the closed set of event tags the generator
// emits and, for each, the grammar-string pattern describing the shape of
// subtree it is allowed to head.
package event

import "strings"

// Tag is one of the closed set of event kinds a generation run can emit.
type Tag int

const (
	// Terminal (leaf) tags: their payload lives in the sidecar
	// EventGenerationContext, keyed by tag, not in the event itself.
	String Tag = iota
	U32
	EnumVariantName

	// Non-terminal (branch) tags.
	CompilerIdentifier
	LocalIdentifier
	GlobalIdentifier
	Uuid
	EvolutionaryIdentifier
	ShapeName
	Shape
	DerivedTrace
	Field
	Documentation
	Tags
	ElementaryEnum
	EnumVariantUnit

	// Reserved for DiscriminantUnion generation (see Open Questions in
	// DESIGN.md): modeled so the pattern grammar and store shapes stay
	// uniform with the elementary path, even though no generator walks
	// them today.
	DiscriminantUnionEnum
	TagField
)

var tagNames = map[Tag]string{
	String:                 "String",
	U32:                    "U32",
	EnumVariantName:        "EnumVariantName",
	CompilerIdentifier:     "CompilerIdentifier",
	LocalIdentifier:        "LocalIdentifier",
	GlobalIdentifier:       "GlobalIdentifier",
	Uuid:                   "Uuid",
	EvolutionaryIdentifier: "EvolutionaryIdentifier",
	ShapeName:              "ShapeName",
	Shape:                  "Shape",
	DerivedTrace:           "DerivedTrace",
	Field:                  "Field",
	Documentation:          "Documentation",
	Tags:                   "Tags",
	ElementaryEnum:         "ElementaryEnum",
	EnumVariantUnit:        "EnumVariantUnit",
	DiscriminantUnionEnum:  "DiscriminantUnionEnum",
	TagField:               "TagField",
}

func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return "Unknown"
}

// IsTerminal reports whether t is a leaf tag whose payload is carried in
// the sidecar context rather than by further child events.
func (t Tag) IsTerminal() bool {
	switch t {
	case String, U32, EnumVariantName:
		return true
	default:
		return false
	}
}

// Pattern returns the grammar string describing the admissible shape of a
// subtree headed by t, in the small s-expression pattern language
// internal/pattern parses.
func (t Tag) Pattern() string {
	switch t {
	case String, U32, EnumVariantName:
		return ""
	case CompilerIdentifier:
		return "U32"
	case LocalIdentifier:
		return "U32"
	case GlobalIdentifier:
		return "Uuid"
	case Uuid:
		return "String"
	case EvolutionaryIdentifier:
		return "(+ (| U32 Uuid String))"
	case ShapeName:
		return "String"
	case Shape:
		return "CompilerIdentifier EvolutionaryIdentifier ShapeName (? DerivedTrace)"
	case DerivedTrace:
		return "(+ CompilerIdentifier)"
	case Field:
		return "String (+ _)"
	case Documentation:
		return "(+ String)"
	case Tags:
		return "(+ String)"
	case ElementaryEnum:
		return "Shape (| LocalIdentifier GlobalIdentifier) Field (? Field) (? Documentation) (? Tags)"
	case EnumVariantUnit:
		return "LocalIdentifier CompilerIdentifier EvolutionaryIdentifier EnumVariantName (? Documentation) (? Tags) (? DerivedTrace)"
	case DiscriminantUnionEnum:
		return "Shape (| LocalIdentifier GlobalIdentifier) TagField (+ EnumVariantUnit) (? Documentation) (? Tags)"
	case TagField:
		return "Field"
	default:
		return ""
	}
}

// ByName resolves a tag by case-insensitive name match against the closed
// set above, the way the pattern parser resolves grammar atoms.
func ByName(name string) (Tag, bool) {
	lower := strings.ToLower(name)
	for t, n := range tagNames {
		if strings.ToLower(n) == lower {
			return t, true
		}
	}
	return 0, false
}
