// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sector

import "github.com/luxfi/ids"

// ID is a 32-byte opaque sector identifier, derived by the plotter from the
// farmer's public key and the sector index. Represented as ids.ID, the
// teacher's generic 32-byte identifier type.
type ID = ids.ID

// PublicKey is the 32-byte public key a sector was plotted for.
type PublicKey = ids.ID

// SBucket indexes into [0, NumSBuckets).
type SBucket uint16

// PieceOffset indexes a piece within a sector, in [0, pieces_in_sector).
type PieceOffset uint16

// SolutionDistance is the numeric closeness between a chunk's quality and a
// per-slot target; lower is better.
type SolutionDistance uint64

// Chunk is one field-element-sized unit of a record.
type Chunk [ScalarBytes]byte

// Commitment is a record's KZG commitment: a compressed BLS12-381 G1 point.
type Commitment [CommitmentSize]byte

// Witness is a piece-to-segment witness, copied verbatim from per-piece
// metadata into a solution.
type Witness [WitnessSize]byte

// ChunkWitness is a KZG opening proof for a single chunk at a given
// s-bucket.
type ChunkWitness [CommitmentSize]byte

// Polynomial is the 2x erasure-extended chunk set for one piece, in
// evaluation form over the NumSBuckets-th roots of unity: one scalar per
// s-bucket, already combining whatever was actually stored on disk with
// whatever erasure decoding reconstructed.
type Polynomial struct {
	Evaluations [NumSBuckets]Chunk
}
