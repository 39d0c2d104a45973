// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sector

import (
	"errors"
	"fmt"
)

// ErrTooManyPieces is returned when a sector declares more pieces than the
// protocol allows, and also when it declares zero pieces.
var ErrTooManyPieces = errors.New("pieces_in_sector exceeds MaxPiecesInSector")

// Metadata is the plotter-produced, read-only-to-the-core description of a
// sector. s_bucket_offsets[b] gives the start, in scalars, of s-bucket b
// within the sector body.
type Metadata struct {
	SectorIndex     uint64
	PiecesInSector  uint16
	HistorySize     uint64
	SBucketOffsets  [NumSBuckets]uint32
	Checksum        [32]byte
}

// Validate checks the invariants spec.md §3 places on sector metadata.
func (m *Metadata) Validate() error {
	if m.PiecesInSector == 0 {
		return fmt.Errorf("%w: pieces_in_sector is zero", ErrTooManyPieces)
	}
	if m.PiecesInSector > MaxPiecesInSector {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPieces, m.PiecesInSector, MaxPiecesInSector)
	}
	return nil
}

// BodyStart returns the offset of the first s-bucket chunk storage byte,
// i.e. the end of the encoded SectorContentsMap.
func (m *Metadata) BodyStart() int64 {
	return int64(EncodedSize(m.PiecesInSector))
}

// BodySize returns the total size, in bytes, of the s-bucket chunk storage
// region: every piece contributes exactly ChunksPerRecord stored chunks,
// spread across whichever s-buckets the plotter marked encoded for it.
func (m *Metadata) BodySize() int64 {
	return int64(m.PiecesInSector) * RecordSize
}

// RecordMetadataOffset returns the absolute offset of the
// (commitment, witness) trailer for the piece at pieceOffset.
func (m *Metadata) RecordMetadataOffset(pieceOffset PieceOffset) int64 {
	return m.BodyStart() + m.BodySize() + int64(pieceOffset)*MetadataSize
}

// MetadataEnd returns the offset immediately following the last piece's
// metadata trailer, i.e. the start of the trailing (unverified) checksum.
func (m *Metadata) MetadataEnd() int64 {
	return m.RecordMetadataOffset(PieceOffset(m.PiecesInSector))
}

// SBucketOffset returns the absolute on-disk offset of the first scalar
// stored for s-bucket b, before accounting for the local index within that
// bucket.
func (m *Metadata) SBucketOffset(b SBucket) int64 {
	return m.BodyStart() + int64(m.SBucketOffsets[b])*ScalarBytes
}
