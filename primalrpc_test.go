// Copyright 2026 The primalrpc Project Contributors
// SPDX-License-Identifier: Apache-2.0

package primalrpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criloz/primalrpc"
)

const retrySource = `(version "1")
(def RetryDecision
  (id 1)
  (enum :variants [
    ^idempotent (id 1) :Accept
    (id 2) :Reject
  ]))`

func TestParseThenGenerateEndToEnd(t *testing.T) {
	pkg := primalrpc.NewPackage()
	err := primalrpc.Parse([]byte(retrySource), primalrpc.SourceID(1), pkg)
	require.NoError(t, err)

	defs := primalrpc.Definitions(pkg)
	require.Len(t, defs, 1)
	assert.Equal(t, "RetryDecision", defs[0].Name)

	seq, ctx := primalrpc.Generate(pkg, defs[0].Resource)
	var events []primalrpc.Event
	for e := range seq {
		events = append(events, e)
	}
	require.NotEmpty(t, events)
	assert.NotEmpty(t, ctx.Strings)
	assert.NotEmpty(t, ctx.U32)
}

func TestParseSyntaxErrorType(t *testing.T) {
	pkg := primalrpc.NewPackage()
	err := primalrpc.Parse([]byte(`(def Town (id 1) (enum :variants [(id 1) :bad-name]))`), primalrpc.SourceID(1), pkg)
	require.Error(t, err)
	_, ok := err.(*primalrpc.SyntaxError)
	assert.True(t, ok)
}

func TestParseWithMetricsAndGenerateWithMetrics(t *testing.T) {
	pkg := primalrpc.NewPackage()
	mc := primalrpc.NewMetrics()

	err := primalrpc.ParseWithMetrics([]byte(retrySource), primalrpc.SourceID(1), pkg, mc)
	require.NoError(t, err)

	defs := primalrpc.Definitions(pkg)
	require.Len(t, defs, 1)

	seq, ctx := primalrpc.GenerateWithMetrics(pkg, defs[0].Resource, mc)
	var count int
	for range seq {
		count++
	}
	assert.Positive(t, count)
	assert.NotNil(t, ctx)
}
