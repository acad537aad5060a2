// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package fixtures loads data-driven parse scenarios from YAML files, the
// same ergonomic goal the go-yaml project's internal/testutil/datatest
// harness states for itself: a new scenario is a fixture edit, not a code
// change. Unlike that harness (a generic, reflection-based loader for
// arbitrary Go types) this one loads exactly the shape internal/eval tests
// need — source text plus the expected outcome —
// since the new domain's test surface is narrow enough that a bespoke
// struct is simpler than a generic registry.
package fixtures

import (
	"fmt"
	"os"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

// Case is one parse scenario: source text and its expected outcome.
type Case struct {
	Name string `yaml:"name"`
	Doc  string `yaml:"doc"`

	Source string `yaml:"source"`

	// Expected success shape.
	WantVariants []string `yaml:"want_variants"`
	WantDefault  string   `yaml:"want_default"`

	// Expected failure shape. ErrorKind names a diag.ErrorKind by its
	// String() spelling (e.g. "InvalidEnumVariantName").
	WantError       bool     `yaml:"want_error"`
	ErrorKind       string   `yaml:"error_kind"`
	ErrorCause      string   `yaml:"error_cause"`
	ErrorLocationsN int      `yaml:"error_locations"`
	ErrorExpected   string   `yaml:"error_expected"`
	ErrorGot        string   `yaml:"error_got"`
	ErrorSupported  []string `yaml:"error_supported"`
}

// Load reads and parses every Case in a scenario file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", path, err)
	}
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("fixtures: parse %s: %w", path, err)
	}
	return cases, nil
}

// Archive is one golden, multi-file fixture: source text alongside a
// plain-text rendering of the event stream an eventgen run over it is
// expected to produce. Unlike Case (one YAML document per scenario file),
// an Archive bundles several named text blobs in one file via the txtar
// format, which reads more naturally when the "expected" side is itself a
// multi-line event dump rather than a short scalar.
type Archive struct {
	Comment string
	Files   map[string]string
}

// LoadArchive reads a txtar archive and indexes its files by name.
func LoadArchive(path string) (*Archive, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: parse archive %s: %w", path, err)
	}
	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}
	return &Archive{Comment: string(ar.Comment), Files: files}, nil
}
