// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package eval_test

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criloz/primalrpc/internal/diag"
	"github.com/criloz/primalrpc/internal/eval"
	"github.com/criloz/primalrpc/internal/ids"
	"github.com/criloz/primalrpc/internal/store"
	"github.com/criloz/primalrpc/internal/testutil/fixtures"
)

func runFixture(t *testing.T, path string) {
	t.Helper()
	cases, err := fixtures.Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, cases, "%s: no cases loaded", path)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			pkg := store.NewPackage()
			err := eval.ParseSource([]byte(tc.Source), ids.SourceID(1), pkg)

			if !tc.WantError {
				require.NoError(t, err)
				assertVariants(t, pkg, tc)
				return
			}

			require.Error(t, err)
			synErr, ok := err.(*diag.SyntaxError)
			require.True(t, ok, "expected *diag.SyntaxError, got %T", err)

			if tc.ErrorKind != "" {
				assert.Equal(t, tc.ErrorKind, synErr.Kind.String())
			}
			if tc.ErrorCause != "" {
				assert.Equal(t, tc.ErrorCause, synErr.Cause.String())
			}
			if tc.ErrorExpected != "" {
				assert.Equal(t, tc.ErrorExpected, strconv.Itoa(synErr.ExpectedCount))
			}
			if tc.ErrorGot != "" {
				if synErr.Got != "" {
					assert.Equal(t, tc.ErrorGot, synErr.Got)
				} else {
					assert.Equal(t, tc.ErrorGot, strconv.Itoa(synErr.GotCount))
				}
			}
			if len(tc.ErrorSupported) > 0 {
				assert.Equal(t, tc.ErrorSupported, synErr.SupportedValues)
			}
			if tc.ErrorLocationsN > 0 {
				assert.Len(t, synErr.Locations, tc.ErrorLocationsN)
			}
		})
	}
}

// assertVariants locates the single top-level enum Definition a success
// fixture declares and checks its variant names against the fixture's
// expectations. A fixture's WantDefault is not checked.
func assertVariants(t *testing.T, pkg *store.Package, tc fixtures.Case) {
	t.Helper()
	defs := pkg.Definitions()
	require.Len(t, defs, 1)
	require.Equal(t, ids.ResourceEnum, defs[0].Resource.Kind)

	enum, ok := pkg.Enumeration(defs[0].Resource.EnumID)
	require.True(t, ok)
	require.Equal(t, store.EnumElementary, enum.Kind)

	shapeID, ok := pkg.EnumerationShape(defs[0].Resource.EnumID)
	require.True(t, ok)
	shape, ok := pkg.Shape(shapeID)
	require.True(t, ok)
	assert.True(t, shape.IsReady)
	assert.True(t, shape.HasCompilerID)
	assert.NotEmpty(t, shape.CrossSchemaID)

	if len(tc.WantVariants) > 0 {
		require.Len(t, enum.Variants, len(tc.WantVariants))
		for i, vid := range enum.Variants {
			v, ok := pkg.EnumVariant(vid)
			require.True(t, ok)
			require.Equal(t, store.VariantNameFromAST, v.Name.Kind)
			key, ok := pkg.Key(v.Name.KeyID)
			require.True(t, ok)
			assert.Equal(t, tc.WantVariants[i], strings.Join(key.Segments, ":"))
		}
	}
}

func TestEnumOK(t *testing.T) {
	runFixture(t, filepath.Join("..", "testutil", "fixtures", "testdata", "enum_ok.yaml"))
}

func TestEnumErrors(t *testing.T) {
	runFixture(t, filepath.Join("..", "testutil", "fixtures", "testdata", "enum_errors.yaml"))
}

func TestIDErrors(t *testing.T) {
	runFixture(t, filepath.Join("..", "testutil", "fixtures", "testdata", "ids.yaml"))
}

func TestVersionErrors(t *testing.T) {
	runFixture(t, filepath.Join("..", "testutil", "fixtures", "testdata", "version.yaml"))
}

// TestFirstErrorWins checks that a source document with two independent
// faults only ever reports the first — no recovery or continuation
// parsing.
func TestFirstErrorWins(t *testing.T) {
	src := []byte(`(version "1")
(def Town
  (id 1)
  (enum :variants [
    (id 1) :bad-one
    (id 1) :bad-two
  ]))`)
	pkg := store.NewPackage()
	err := eval.ParseSource(src, ids.SourceID(1), pkg)
	require.Error(t, err)
	synErr, ok := err.(*diag.SyntaxError)
	require.True(t, ok)
	assert.Equal(t, diag.InvalidEnumVariantName, synErr.Kind)
}

func TestUnknownTopLevelForm(t *testing.T) {
	src := []byte(`(version "1")
(bogus 1 2 3)`)
	pkg := store.NewPackage()
	err := eval.ParseSource(src, ids.SourceID(1), pkg)
	require.Error(t, err)
	synErr, ok := err.(*diag.SyntaxError)
	require.True(t, ok)
	assert.Equal(t, diag.UndefinedSymbol, synErr.Kind)
}
