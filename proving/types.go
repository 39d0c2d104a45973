// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package proving implements the proving core: given a plotted sector, its
// metadata, and a set of audit-time chunk candidates, it reconstructs
// cryptographic witnesses and lazily yields solutions, one per surviving
// candidate, in the order the auditor supplied them.
package proving

import (
	"github.com/luxfi/proving/erasure"
	"github.com/luxfi/proving/postable"
	"github.com/luxfi/proving/sector"
	"github.com/luxfi/proving/witness"
)

// SectorID, PublicKey, SBucket, and PieceOffset are re-exported from sector
// so callers never need to import it directly for the common case.
type (
	SectorID    = sector.ID
	PublicKey   = sector.ID
	SBucket     = sector.SBucket
	PieceOffset = sector.PieceOffset
)

// ChunkCandidate is one audit-time candidate: a physically stored chunk in
// the audited s-bucket whose quality was close enough to the slot target.
type ChunkCandidate struct {
	// ChunkOffset is the list position of this candidate within the
	// audited s-bucket's ordered, per-piece record list (sector.ContentsMap
	// list order, not physical storage order). The auditor enumerates every
	// (piece, s_bucket) pair regardless of whether the plotter actually
	// stored a chunk there, so this may reference an entry CandidateFilter
	// goes on to drop because it is erasure-only (encoded = false).
	ChunkOffset uint32

	SolutionDistance sector.SolutionDistance
}

// winningChunk is a candidate CandidateFilter has confirmed maps to an
// actually-encoded (physically stored) record chunk.
type winningChunk struct {
	ChunkOffset      uint32
	PieceOffset      sector.PieceOffset
	SolutionDistance sector.SolutionDistance
}

// Solution is a fully reconstructed proof, ready for the caller to announce.
// RewardAddress is a type parameter because the reward address type is a
// caller/protocol concern the proving core is indifferent to (the Rust
// original requires only Copy; comparable is this module's closest Go
// analogue for a small, freely-copyable value type).
type Solution[RewardAddress comparable] struct {
	PublicKey        PublicKey
	RewardAddress    RewardAddress
	SectorIndex      uint64
	HistorySize      uint64
	PieceOffset      sector.PieceOffset
	RecordCommitment sector.Commitment
	RecordWitness    sector.Witness
	Chunk            sector.Chunk
	ChunkWitness     sector.ChunkWitness
	ProofOfSpace     postable.Proof
}

// Dependencies bundles the borrowed, caller-supplied collaborators a
// SolutionsIterator needs. None of these are owned by the proving core;
// all must outlive the iterator.
type Dependencies struct {
	Builder        *witness.Builder
	ErasureCoding  erasure.Coding
	TableGenerator postable.Generator
}
