// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package diag defines the error model the evaluator reports through (the
// pattern parser uses it for an undefined tag name): a point-located,
// possibly multi-location SyntaxError.
package diag

import (
	"fmt"
	"strings"

	"github.com/criloz/primalrpc/internal/ids"
)

// Point is a single located byte offset, mirroring the position fields a
// CST node exposes.
type Point struct {
	SourceID ids.SourceID
	Byte     uint32
	Row      uint32
	Col      uint32
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row+1, p.Col+1)
}

// ErrorKind is the closed set of evaluator/pattern-parser failure kinds.
type ErrorKind int

const (
	UndefinedSymbol ErrorKind = iota
	InvalidEnumVariantName
	InvalidID
	ConflictIDDefinition
	ConflictVariantNameDefinition
	InvalidNumbersOfIDs
	InvalidNumberOfArguments
	CantBeZero
	TypeError
	ExpectingKeyValue
	UnattachedAttribute
	UnsupportedProperty
	FunctionNotFound
	ExpectingNode
	ExpectingResource
	MissingValue
	ExpectedOperandGotOperator
	IDLMissingVersion
	UnsupportedIDLVersion
	Custom
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedSymbol:
		return "UndefinedSymbol"
	case InvalidEnumVariantName:
		return "InvalidEnumVariantName"
	case InvalidID:
		return "InvalidId"
	case ConflictIDDefinition:
		return "ConflictIdDefinition"
	case ConflictVariantNameDefinition:
		return "ConflictVariantNameDefinition"
	case InvalidNumbersOfIDs:
		return "InvalidNumbersOfIds"
	case InvalidNumberOfArguments:
		return "InvalidNumberOfArguments"
	case CantBeZero:
		return "CantBeZero"
	case TypeError:
		return "TypeError"
	case ExpectingKeyValue:
		return "ExpectingKeyValue"
	case UnattachedAttribute:
		return "UnattachedAttribute"
	case UnsupportedProperty:
		return "UnsupportedProperty"
	case FunctionNotFound:
		return "FunctionNotFound"
	case ExpectingNode:
		return "ExpectingNode"
	case ExpectingResource:
		return "ExpectingResource"
	case MissingValue:
		return "MissingValue"
	case ExpectedOperandGotOperator:
		return "ExpectedOperandGotOperator"
	case IDLMissingVersion:
		return "IDLMissingVersion"
	case UnsupportedIDLVersion:
		return "UnsupportedIDLVersion"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// VariantNameCause is the InvalidEnumVariantName payload's reason.
type VariantNameCause int

const (
	CausePattern VariantNameCause = iota
	CausePascalCase
	CauseMultipleSegments
)

func (c VariantNameCause) String() string {
	switch c {
	case CausePattern:
		return "Pattern"
	case CausePascalCase:
		return "PascalCase"
	case CauseMultipleSegments:
		return "MultiplesSegments"
	default:
		return "Unknown"
	}
}

// AttributeKind is the UnattachedAttribute payload's kind.
type AttributeKind int

const (
	AttrID AttributeKind = iota
	AttrDoc
	AttrMeta
)

func (k AttributeKind) String() string {
	switch k {
	case AttrID:
		return "Id"
	case AttrDoc:
		return "Doc"
	case AttrMeta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// IDScope discriminates Local vs Global in InvalidID diagnostics.
type IDScope int

const (
	ScopeLocal IDScope = iota
	ScopeGlobal
)

func (s IDScope) String() string {
	if s == ScopeLocal {
		return "Local"
	}
	return "Global"
}

// SyntaxError is the error type the evaluator returns for every semantic
// failure, and the one internal/pattern returns for an undefined tag name.
// Source text the reader cannot build a tree from, and malformed pattern
// grammar, fail with plain errors instead. Locations holds every node that
// contributed to the failure: one for a simple fault, two for a conflict
// (both offenders are named so a diagnostic can underline both).
type SyntaxError struct {
	Locations []Point
	Kind      ErrorKind
	SourceID  ids.SourceID

	// Kind-specific payload fields; only the ones relevant to Kind are
	// populated.
	Expected        string
	Got             string
	Cause           VariantNameCause
	AttributeKind   AttributeKind
	ExpectedScope   IDScope
	GotScope        IDScope
	ExpectedCount   int
	GotCount        int
	SupportedValues []string
	Message         string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Kind)
	if e.Expected != "" || e.Got != "" {
		fmt.Fprintf(&b, " (expected %q, got %q)", e.Expected, e.Got)
	}
	if e.Kind == InvalidEnumVariantName {
		fmt.Fprintf(&b, " (%s)", e.Cause)
	}
	if e.Kind == UnattachedAttribute {
		fmt.Fprintf(&b, " (%s)", e.AttributeKind)
	}
	if e.Kind == InvalidID {
		fmt.Fprintf(&b, " (expected %s, got %s)", e.ExpectedScope, e.GotScope)
	}
	if e.Kind == InvalidNumbersOfIDs || e.Kind == InvalidNumberOfArguments {
		fmt.Fprintf(&b, " (expected %d, got %d)", e.ExpectedCount, e.GotCount)
	}
	if e.Kind == Custom && e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if len(e.Locations) > 0 {
		locs := make([]string, len(e.Locations))
		for i, l := range e.Locations {
			locs[i] = l.String()
		}
		fmt.Fprintf(&b, " at %s", strings.Join(locs, ", "))
	}
	return b.String()
}

// New builds a single-location SyntaxError.
func New(kind ErrorKind, sourceID ids.SourceID, at Point) *SyntaxError {
	return &SyntaxError{Kind: kind, SourceID: sourceID, Locations: []Point{at}}
}

// NewConflict builds a two-location SyntaxError for conflict diagnostics
// (id reuse, name reuse).
func NewConflict(kind ErrorKind, sourceID ids.SourceID, first, second Point) *SyntaxError {
	return &SyntaxError{Kind: kind, SourceID: sourceID, Locations: []Point{first, second}}
}
