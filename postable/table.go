// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package postable defines the proof-of-space table capability the proving
// core depends on but never implements: tables are regenerated on demand by
// a caller-supplied generator from a deterministic per-piece seed.
package postable

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/luxfi/proving/sector"
)

// Seed is the deterministic input to a TableGenerator.
type Seed [32]byte

// Quality is an opaque per-s-bucket proof-of-space quality value, used only
// to reverse the plotter's chunk mask.
type Quality [32]byte

// Proof is an opaque per-s-bucket proof-of-space proof, copied verbatim
// into a Solution.
type Proof []byte

// Table is a regenerated-on-demand proof-of-space table for one piece.
// Implementations are supplied by the caller; the proving core never
// constructs one directly.
type Table interface {
	// FindQuality returns the quality recorded for s-bucket b, used by the
	// ChunkReader to reverse the plotter's mask. ok is false when the table
	// has no entry for b (which should not occur for an encoded entry on a
	// well-formed sector).
	FindQuality(b sector.SBucket) (q Quality, ok bool)

	// FindProof returns the proof for s-bucket b. By construction this is
	// always present for a winning s-bucket.
	FindProof(b sector.SBucket) (p Proof, ok bool)
}

// Generator builds a Table from a seed. Callers supply one generator per
// PosTable implementation (e.g. one per plot format version); the proving
// core calls it once per distinct (piece_offset) it needs to prove.
type Generator func(seed Seed) (Table, error)

// DeriveEvaluationSeed computes the deterministic per-piece seed a
// Generator is invoked with, per spec.md §4.4:
// derive_evaluation_seed(sector_id, piece_offset, history_size).
func DeriveEvaluationSeed(sectorID sector.ID, pieceOffset sector.PieceOffset, historySize uint64) Seed {
	h := sha256.New()
	h.Write(sectorID[:])
	var buf [10]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(pieceOffset))
	binary.LittleEndian.PutUint64(buf[2:10], historySize)
	h.Write(buf[:])
	var seed Seed
	copy(seed[:], h.Sum(nil))
	return seed
}
