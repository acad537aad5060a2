// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package validate holds pure, stateless predicates over surface-syntax
// text: no store or CST dependency, so they're trivial to unit test in
// isolation and to call from both the evaluator and its error paths.
package validate

import "strings"

// VariantNameCause names why IsEnumVariantName rejected a name.
type VariantNameCause int

const (
	CauseNone VariantNameCause = iota
	CausePattern
	CausePascalCase
	CauseMultipleSegments
)

// IsEnumVariantName reports whether name is an acceptable enum variant
// identifier and, if not, why. A multi-segment keyword like `:Foo:Bar`
// (already split from its leading colon by the caller, so name here is
// "Foo:Bar") is rejected before form/casing are even considered.
func IsEnumVariantName(name string) (bool, VariantNameCause) {
	if strings.Contains(name, ":") {
		return false, CauseMultipleSegments
	}
	if !matchesIdentPattern(name) {
		return false, CausePattern
	}
	if !isPascalCase(name) {
		return false, CausePascalCase
	}
	return true, CauseNone
}

// matchesIdentPattern implements ^[A-Za-z][A-Za-z0-9]*$ without regexp: the
// alphabet is tiny and fixed, so a byte-by-byte scan avoids compiling a
// pattern for a one-shot check called once per variant.
func matchesIdentPattern(name string) bool {
	if len(name) == 0 {
		return false
	}
	if !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isAlpha(c) && !isDigit(c) {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isPascalCase requires an upper-case leading letter; matchesIdentPattern
// has already confirmed the rest of the alphabet.
func isPascalCase(name string) bool {
	return name[0] >= 'A' && name[0] <= 'Z'
}
