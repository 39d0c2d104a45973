// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package erasure

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/proving/sector"
)

func TestNewReedSolomonMaxShards(t *testing.T) {
	rs, err := NewReedSolomon()
	require.NoError(t, err)
	require.Equal(t, sector.NumSBuckets, rs.MaxShards())
}

// fullRecord builds a deterministic, fully populated evaluation set via
// Encode: ChunksPerRecord source chunks followed by their computed parity.
func fullRecord(t *testing.T, rs *ReedSolomon) []*sector.Chunk {
	t.Helper()

	data := make([]sector.Chunk, sector.ChunksPerRecord)
	for i := range data {
		for j := range data[i] {
			data[i][j] = byte(i + j)
		}
	}

	poly, err := rs.Encode(data)
	require.NoError(t, err)

	full := make([]*sector.Chunk, sector.NumSBuckets)
	for i := range poly.Evaluations {
		c := poly.Evaluations[i]
		full[i] = &c
	}
	return full
}

func TestEncodeRejectsWrongDataLength(t *testing.T) {
	rs, err := NewReedSolomon()
	require.NoError(t, err)

	_, err = rs.Encode(make([]sector.Chunk, sector.ChunksPerRecord-1))
	require.Error(t, err)
}

func TestRecoverPolynomialFromDataShardsOnly(t *testing.T) {
	rs, err := NewReedSolomon()
	require.NoError(t, err)

	full := fullRecord(t, rs)

	// Drop every parity shard; only the ChunksPerRecord data shards survive.
	partial := make([]*sector.Chunk, sector.NumSBuckets)
	copy(partial, full[:sector.ChunksPerRecord])

	poly, err := rs.RecoverPolynomial(partial)
	require.NoError(t, err)

	for i := range full {
		require.Equal(t, *full[i], poly.Evaluations[i], "shard %d", i)
	}
}

func TestRecoverPolynomialFromScatteredSubset(t *testing.T) {
	rs, err := NewReedSolomon()
	require.NoError(t, err)

	full := fullRecord(t, rs)

	partial := make([]*sector.Chunk, sector.NumSBuckets)
	for i := 0; i < sector.NumSBuckets; i += 2 {
		partial[i] = full[i]
	}
	// Exactly half survive, scattered across data and parity positions.

	poly, err := rs.RecoverPolynomial(partial)
	require.NoError(t, err)

	for i := range full {
		require.Equal(t, *full[i], poly.Evaluations[i], "shard %d", i)
	}
}

func TestRecoverPolynomialFailsWithTooFewShards(t *testing.T) {
	rs, err := NewReedSolomon()
	require.NoError(t, err)

	full := fullRecord(t, rs)

	partial := make([]*sector.Chunk, sector.NumSBuckets)
	// One short of the data-shard count needed to reconstruct.
	copy(partial, full[:sector.ChunksPerRecord-1])

	_, err = rs.RecoverPolynomial(partial)
	require.ErrorIs(t, err, ErrDecodeFailed)
}
