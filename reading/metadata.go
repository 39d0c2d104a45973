// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reading

import (
	"fmt"

	"github.com/luxfi/proving/sector"
)

// ReadRecordMetadata reads the (commitment, witness) trailer for the piece
// at pieceOffset, per spec.md §4.6.
func ReadRecordMetadata(s ReadAtSync, metadata *sector.Metadata, pieceOffset sector.PieceOffset) (sector.Commitment, sector.Witness, error) {
	var commitment sector.Commitment
	var witness sector.Witness

	offset := metadata.RecordMetadataOffset(pieceOffset)

	var buf [sector.MetadataSize]byte
	if err := s.ReadAt(buf[:], offset); err != nil {
		return commitment, witness, fmt.Errorf("%w: record metadata piece_offset %d: %v", ErrIO, pieceOffset, err)
	}

	copy(commitment[:], buf[:sector.CommitmentSize])
	copy(witness[:], buf[sector.CommitmentSize:])

	return commitment, witness, nil
}
