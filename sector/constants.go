// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sector implements the on-disk sector layout a plotter writes and
// the proving core reads: the sector contents map, the per-piece record
// metadata trailer, and the primitive types (chunks, s-buckets, piece
// offsets) shared by every other package in this module.
package sector

// Fixed domain constants. These are not configuration: they must match the
// plotter and the consensus runtime that consumes the solutions built from
// them.
const (
	// NumSBuckets is the number of s-buckets per sector slot. Every record
	// in a sector contributes exactly one chunk to each s-bucket, after 2x
	// erasure extension.
	NumSBuckets = 256

	// ChunksPerRecord is the number of source (pre-extension) chunks in one
	// record, and therefore the erasure code's data-shard count. See
	// DESIGN.md "Open Question decisions" for why this is NumSBuckets/2
	// rather than the literal NumSBuckets reading of spec.md §3.
	ChunksPerRecord = NumSBuckets / 2

	// ScalarBytes is the width of one chunk: a 32-byte scalar (field
	// element) in the KZG scheme the proving core assumes.
	ScalarBytes = 32

	// RecordSize is the on-disk size, in bytes, of one record's source
	// chunks.
	RecordSize = ChunksPerRecord * ScalarBytes

	// CommitmentSize and WitnessSize are the sizes of a compressed
	// BLS12-381 G1 point, as used for the record commitment and the
	// record-to-segment witness.
	CommitmentSize = 48
	WitnessSize    = 48

	// MetadataSize is the per-piece trailer holding the record commitment
	// and record witness.
	MetadataSize = CommitmentSize + WitnessSize

	// MaxPiecesInSector bounds SectorMetadata.PiecesInSector, as declared by
	// the surrounding protocol.
	MaxPiecesInSector = 1000
)
