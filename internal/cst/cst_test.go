// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criloz/primalrpc/internal/cst"
	"github.com/criloz/primalrpc/internal/cst/reader"
)

func TestFilterNotExtraAllowDocsDropsPunctuationAndBareComments(t *testing.T) {
	src := "(id 1 ; trailing noise\n)"
	root, err := reader.Parse(src)
	require.NoError(t, err)

	items := cst.FilterNotExtraAllowDocs(root.Child(0), src)
	// sym_lit "id", num_lit "1" — the trailing line comment and the
	// parens are filtered out.
	require.Len(t, items, 2)
	assert.Equal(t, cst.KindSymLit, items[0].Kind())
	assert.Equal(t, cst.KindNumLit, items[1].Kind())
}

func TestFilterNotExtraAllowDocsKeepsDocComments(t *testing.T) {
	src := ";; a doc comment\n(id 1)"
	root, err := reader.Parse(src)
	require.NoError(t, err)

	items := cst.FilterNotExtraAllowDocs(root, src)
	require.Len(t, items, 2)
	assert.Equal(t, cst.KindComment, items[0].Kind())
	assert.True(t, cst.IsNotExtraAllowDocs(items[0], src))
}

func TestFirstNotExtraAllowDocsSkipsPunctuation(t *testing.T) {
	src := "(id 1)"
	root, err := reader.Parse(src)
	require.NoError(t, err)

	first := cst.FirstNotExtraAllowDocs(root.Child(0), src)
	require.NotNil(t, first)
	assert.Equal(t, cst.KindSymLit, first.Kind())
	assert.Equal(t, "id", first.Text(src))
}

func TestFirstNotExtraAllowDocsNilOnEmptyList(t *testing.T) {
	src := "()"
	root, err := reader.Parse(src)
	require.NoError(t, err)

	first := cst.FirstNotExtraAllowDocs(root.Child(0), src)
	assert.Nil(t, first)
}

func TestIsNotExtraRejectsOrdinaryComments(t *testing.T) {
	src := "; just noise\n(id 1)"
	root, err := reader.Parse(src)
	require.NoError(t, err)

	for i := 0; i < root.ChildCount(); i++ {
		c := root.Child(i)
		if c.Kind() == cst.KindComment {
			assert.False(t, cst.IsNotExtra(c))
			assert.False(t, cst.IsNotExtraAllowDocs(c, src))
		}
	}
}
