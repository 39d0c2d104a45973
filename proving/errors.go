// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proving

import (
	"errors"
	"fmt"

	"github.com/luxfi/proving/sector"
)

// Construction-time errors: returned by IntoSolutions (and so by
// NewSolutionsIterator), they abort iterator creation. An invalid erasure
// coding instance is rejected before any read; the other two come from
// reading and decoding the sector's contents map.
var (
	// ErrInvalidErasureCodingInstance is returned when the supplied erasure
	// coding instance's MaxShards() is below sector.NumSBuckets.
	ErrInvalidErasureCodingInstance = errors.New("invalid erasure coding instance")

	// ErrFailedToDecodeSectorContentsMap is returned when the sector's
	// leading contents-map bytes are malformed or a version mismatch.
	ErrFailedToDecodeSectorContentsMap = errors.New("failed to decode sector contents map")

	// ErrIO wraps a raw reader error surfaced during construction.
	ErrIO = errors.New("io error")
)

// FailedToErasureDecodeRecordError is a per-candidate error: recovering the
// full chunk set for piece_offset failed. Iteration continues.
type FailedToErasureDecodeRecordError struct {
	PieceOffset sector.PieceOffset
	Err         error
}

func (e *FailedToErasureDecodeRecordError) Error() string {
	return fmt.Sprintf("failed to erasure-decode record at piece offset %d: %v", e.PieceOffset, e.Err)
}

func (e *FailedToErasureDecodeRecordError) Unwrap() error { return e.Err }

// FailedToCreatePolynomialForRecordError is declared for API completeness
// with spec.md's full error taxonomy but intentionally never constructed:
// DESIGN.md's "Open Question decisions" records that this repository
// collapses it into FailedToErasureDecodeRecordError, since the only
// reachable polynomial-construction failure is an erasure-decode failure.
type FailedToCreatePolynomialForRecordError struct {
	PieceOffset sector.PieceOffset
	Err         error
}

func (e *FailedToCreatePolynomialForRecordError) Error() string {
	return fmt.Sprintf("failed to create polynomial for record at piece offset %d: %v", e.PieceOffset, e.Err)
}

func (e *FailedToCreatePolynomialForRecordError) Unwrap() error { return e.Err }

// FailedToCreateChunkWitnessError is a per-candidate error: the KZG opening
// proof could not be produced for (piece_offset, chunk_offset).
type FailedToCreateChunkWitnessError struct {
	PieceOffset sector.PieceOffset
	ChunkOffset uint32
	Err         error
}

func (e *FailedToCreateChunkWitnessError) Error() string {
	return fmt.Sprintf("failed to create chunk witness for record at piece offset %d chunk %d: %v", e.PieceOffset, e.ChunkOffset, e.Err)
}

func (e *FailedToCreateChunkWitnessError) Unwrap() error { return e.Err }
