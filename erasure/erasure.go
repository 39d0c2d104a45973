// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package erasure recovers a record's full, 2x erasure-extended chunk set
// from whatever subset ChunkReader actually found stored on disk.
package erasure

import (
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"

	"github.com/luxfi/proving/sector"
)

// ErrDecodeFailed is returned when too few chunks survive to reconstruct a
// record; per spec.md §4.4 this should not occur on an honest plot and is
// treated as a per-candidate failure rather than a construction error.
var ErrDecodeFailed = errors.New("failed to erasure-decode record")

// Coding is the erasure-coding capability the proving core borrows from its
// caller (spec.md §3, §6). It is supplied externally; the proving core
// never constructs one on its own behalf.
type Coding interface {
	// MaxShards is the total shard count the instance was built for. The
	// proving core requires MaxShards() >= sector.NumSBuckets as a
	// construction-time invariant.
	MaxShards() int

	// RecoverPolynomial reconstructs the full NumSBuckets-wide evaluation
	// set from chunks, where a nil entry means "not stored, recover it".
	RecoverPolynomial(chunks []*sector.Chunk) (sector.Polynomial, error)
}

// ReedSolomon is the klauspost/reedsolomon-backed Coding implementation:
// ChunksPerRecord data shards, NumSBuckets-ChunksPerRecord parity shards,
// one scalar per shard.
type ReedSolomon struct {
	enc reedsolomon.Encoder
}

// NewReedSolomon builds the standard 2x-redundancy instance this module's
// fixed domain constants imply.
func NewReedSolomon() (*ReedSolomon, error) {
	enc, err := reedsolomon.New(sector.ChunksPerRecord, sector.NumSBuckets-sector.ChunksPerRecord)
	if err != nil {
		return nil, fmt.Errorf("erasure: construct reed-solomon instance: %w", err)
	}
	return &ReedSolomon{enc: enc}, nil
}

// MaxShards returns the instance's total shard count.
func (r *ReedSolomon) MaxShards() int {
	return sector.NumSBuckets
}

// Encode fills in the NumSBuckets-ChunksPerRecord parity shards for a
// record's ChunksPerRecord data chunks, producing the full evaluation set a
// plotter writes (a subset of) to disk. It is the inverse operation of
// RecoverPolynomial's reconstruction and is exported for callers that author
// sectors (plotters, and this module's own test fixtures).
func (r *ReedSolomon) Encode(data []sector.Chunk) (sector.Polynomial, error) {
	var poly sector.Polynomial
	if len(data) != sector.ChunksPerRecord {
		return poly, fmt.Errorf("erasure: need %d data chunks, got %d", sector.ChunksPerRecord, len(data))
	}

	shards := make([][]byte, sector.NumSBuckets)
	for i := range data {
		shards[i] = append([]byte(nil), data[i][:]...)
	}
	for i := sector.ChunksPerRecord; i < sector.NumSBuckets; i++ {
		shards[i] = make([]byte, sector.ScalarBytes)
	}

	if err := r.enc.Encode(shards); err != nil {
		return poly, fmt.Errorf("erasure: encode record: %w", err)
	}

	for i, s := range shards {
		copy(poly.Evaluations[i][:], s)
	}
	return poly, nil
}

// RecoverPolynomial implements Coding.
func (r *ReedSolomon) RecoverPolynomial(chunks []*sector.Chunk) (sector.Polynomial, error) {
	var poly sector.Polynomial

	shards := make([][]byte, sector.NumSBuckets)
	for i, c := range chunks {
		if c != nil {
			shards[i] = c[:]
		}
	}

	if err := r.enc.Reconstruct(shards); err != nil {
		return poly, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	for i, s := range shards {
		copy(poly.Evaluations[i][:], s)
	}

	return poly, nil
}
