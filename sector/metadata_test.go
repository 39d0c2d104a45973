// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataValidate(t *testing.T) {
	m := &Metadata{PiecesInSector: 0}
	require.ErrorIs(t, m.Validate(), ErrTooManyPieces)

	m = &Metadata{PiecesInSector: MaxPiecesInSector + 1}
	require.ErrorIs(t, m.Validate(), ErrTooManyPieces)

	m = &Metadata{PiecesInSector: MaxPiecesInSector}
	require.NoError(t, m.Validate())

	m = &Metadata{PiecesInSector: 1}
	require.NoError(t, m.Validate())
}

func TestMetadataLayoutOffsets(t *testing.T) {
	const pieces = 10
	m := &Metadata{PiecesInSector: pieces}

	bodyStart := m.BodyStart()
	require.Equal(t, int64(EncodedSize(pieces)), bodyStart)

	bodySize := m.BodySize()
	require.Equal(t, int64(pieces)*RecordSize, bodySize)

	recordsEnd := bodyStart + bodySize
	require.Equal(t, recordsEnd, m.RecordMetadataOffset(0))
	require.Equal(t, recordsEnd+MetadataSize, m.RecordMetadataOffset(1))
	require.Equal(t, recordsEnd+int64(pieces-1)*MetadataSize, m.RecordMetadataOffset(pieces-1))

	require.Equal(t, recordsEnd+int64(pieces)*MetadataSize, m.MetadataEnd())
}

func TestMetadataSBucketOffset(t *testing.T) {
	m := &Metadata{PiecesInSector: 4}
	m.SBucketOffsets[0] = 0
	m.SBucketOffsets[1] = 7

	require.Equal(t, m.BodyStart(), m.SBucketOffset(0))
	require.Equal(t, m.BodyStart()+7*ScalarBytes, m.SBucketOffset(1))
}
