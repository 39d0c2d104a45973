// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildContentsMap(t *testing.T, piecesInSector uint16, encoded func(b int, piece int) bool) *ContentsMap {
	t.Helper()

	bytes := make([]byte, EncodedSize(piecesInSector))
	m, err := DecodeContentsMap(bytes, piecesInSector)
	require.NoError(t, err)

	for b := 0; b < NumSBuckets; b++ {
		for p := 0; p < int(piecesInSector); p++ {
			m.buckets[b][p] = Entry{PieceOffset: PieceOffset(p), Encoded: encoded(b, p)}
		}
	}
	return m
}

func TestEncodedSizeMatchesFormula(t *testing.T) {
	for _, pieces := range []uint16{1, 2, 3, 7, 8, 9, 255, 256, MaxPiecesInSector} {
		bitmapBytes := (int(pieces) + 7) / 8
		offsetBits := bitsNeeded(pieces)
		offsetBytes := (offsetBits + 7) / 8

		want := NumSBuckets * (bitmapBytes + int(pieces)*offsetBytes)
		require.Equal(t, want, EncodedSize(pieces), "pieces=%d", pieces)
	}
}

func TestBitsNeeded(t *testing.T) {
	require.Equal(t, 0, bitsNeeded(1))
	require.Equal(t, 1, bitsNeeded(2))
	require.Equal(t, 2, bitsNeeded(3))
	require.Equal(t, 2, bitsNeeded(4))
	require.Equal(t, 3, bitsNeeded(5))
	require.Equal(t, 8, bitsNeeded(256))
}

func TestContentsMapRoundTrip(t *testing.T) {
	for _, pieces := range []uint16{1, 3, 9, 17, MaxPiecesInSector} {
		m := buildContentsMap(t, pieces, func(b, p int) bool {
			return (b+p)%3 == 0
		})

		encoded := m.Encode()
		require.Len(t, encoded, EncodedSize(pieces))

		decoded, err := DecodeContentsMap(encoded, pieces)
		require.NoError(t, err)

		for b := 0; b < NumSBuckets; b++ {
			require.Equal(t, m.buckets[b], decoded.buckets[b], "bucket %d, pieces %d", b, pieces)
		}
	}
}

func TestDecodeContentsMapRejectsShortInput(t *testing.T) {
	_, err := DecodeContentsMap([]byte{0x00}, 4)
	require.ErrorIs(t, err, ErrMalformedContentsMap)
}

func TestDecodeContentsMapRejectsZeroOrOversizedPieceCount(t *testing.T) {
	_, err := DecodeContentsMap(make([]byte, EncodedSize(1)), 0)
	require.ErrorIs(t, err, ErrMalformedContentsMap)

	_, err = DecodeContentsMap(make([]byte, 0), MaxPiecesInSector+1)
	require.ErrorIs(t, err, ErrMalformedContentsMap)
}

func TestDecodeContentsMapRejectsOutOfRangeOffset(t *testing.T) {
	const pieces = 4
	data := make([]byte, EncodedSize(pieces))
	// First bucket's offset list starts right after its 1-byte bitmap.
	data[1] = pieces // local_piece_offset == pieces_in_sector is out of range.

	_, err := DecodeContentsMap(data, pieces)
	require.ErrorIs(t, err, ErrMalformedContentsMap)
}

func TestIterSBucketRecordsLength(t *testing.T) {
	const pieces = 5
	m := buildContentsMap(t, pieces, func(b, p int) bool { return p%2 == 0 })
	require.Len(t, m.IterSBucketRecords(SBucket(0)), pieces)
}

func TestEntryAtOutOfRange(t *testing.T) {
	const pieces = 2
	m := buildContentsMap(t, pieces, func(b, p int) bool { return true })

	_, ok := m.EntryAt(SBucket(0), uint32(pieces))
	require.False(t, ok)

	entry, ok := m.EntryAt(SBucket(0), 0)
	require.True(t, ok)
	require.True(t, entry.Encoded)
}

func TestFindEntryLocalStorageIndexSkipsNonEncoded(t *testing.T) {
	const pieces = 4
	// Bucket 0: piece 0 not encoded, piece 1 encoded, piece 2 not encoded,
	// piece 3 encoded. Piece 3's local storage index should be 1 (only
	// piece 1 precedes it in storage order).
	m := buildContentsMap(t, pieces, func(b, p int) bool {
		if b != 0 {
			return true
		}
		return p == 1 || p == 3
	})

	entry, idx, found := m.FindEntry(SBucket(0), PieceOffset(3))
	require.True(t, found)
	require.True(t, entry.Encoded)
	require.Equal(t, 1, idx)

	entry, idx, found = m.FindEntry(SBucket(0), PieceOffset(1))
	require.True(t, found)
	require.True(t, entry.Encoded)
	require.Equal(t, 0, idx)

	_, _, found = m.FindEntry(SBucket(0), PieceOffset(0))
	require.True(t, found) // entry exists, just not encoded
	entry, _, _ = m.FindEntry(SBucket(0), PieceOffset(0))
	require.False(t, entry.Encoded)
}

func TestFindEntryNotFound(t *testing.T) {
	const pieces = 2
	m := buildContentsMap(t, pieces, func(b, p int) bool { return true })
	_, _, found := m.FindEntry(SBucket(0), PieceOffset(99))
	require.False(t, found)
}
