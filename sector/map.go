// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sector

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

// ErrMalformedContentsMap is returned when the encoded contents map bytes are
// too short or reference an out-of-range piece offset.
var ErrMalformedContentsMap = errors.New("malformed sector contents map")

// Entry is one position in an s-bucket's ordered, per-bucket record list:
// which piece it belongs to, and whether the plotter actually stored a
// masked chunk for it (true) or left it to erasure-coded parity (false).
type Entry struct {
	PieceOffset PieceOffset
	Encoded     bool
}

// ContentsMap is the decoded form of the bit-packed prefix a plotter writes
// at the start of every sector: for each of the NumSBuckets s-buckets, an
// ordered list of length piecesInSector of (piece_offset, encoded) pairs.
// List position is on-disk storage order: among the entries in one bucket
// with Encoded == true, their relative position in this list is also their
// relative position among that bucket's physically stored scalars.
type ContentsMap struct {
	piecesInSector uint16
	offsetWidth    int
	buckets        [NumSBuckets][]Entry
	flags          [NumSBuckets]*bitset.BitSet
}

// bitsNeeded returns ceil(log2(n)) for n >= 1: the number of bits required
// to represent any value in [0, n).
func bitsNeeded(n uint16) int {
	if n <= 1 {
		return 0
	}
	return bits.Len16(n - 1)
}

// offsetByteWidth returns the fixed, byte-aligned width of one packed
// local_piece_offset value, per DESIGN.md's "Open Question decisions": each
// s-bucket's offset list rounds its element width up to a whole byte,
// independently of its neighbors.
func offsetByteWidth(piecesInSector uint16) int {
	return (bitsNeeded(piecesInSector) + 7) / 8
}

func bitmapBytesPerBucket(piecesInSector uint16) int {
	return (int(piecesInSector) + 7) / 8
}

// EncodedSize returns the exact byte length of the encoded SectorContentsMap
// for a sector holding piecesInSector pieces; must match the plotter.
func EncodedSize(piecesInSector uint16) int {
	perBucket := bitmapBytesPerBucket(piecesInSector) + int(piecesInSector)*offsetByteWidth(piecesInSector)
	return NumSBuckets * perBucket
}

// DecodeContentsMap parses the first EncodedSize(piecesInSector) bytes of
// data as a SectorContentsMap.
func DecodeContentsMap(data []byte, piecesInSector uint16) (*ContentsMap, error) {
	if piecesInSector == 0 || piecesInSector > MaxPiecesInSector {
		return nil, fmt.Errorf("%w: pieces_in_sector=%d out of range", ErrMalformedContentsMap, piecesInSector)
	}
	want := EncodedSize(piecesInSector)
	if len(data) < want {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedContentsMap, want, len(data))
	}

	bitmapBytes := bitmapBytesPerBucket(piecesInSector)
	offW := offsetByteWidth(piecesInSector)

	m := &ContentsMap{piecesInSector: piecesInSector, offsetWidth: offW}

	cursor := 0
	for b := 0; b < NumSBuckets; b++ {
		bm := data[cursor : cursor+bitmapBytes]
		cursor += bitmapBytes

		flags := bitset.New(uint(piecesInSector))
		for i := 0; i < int(piecesInSector); i++ {
			if bm[i/8]&(1<<uint(i%8)) != 0 {
				flags.Set(uint(i))
			}
		}

		entries := make([]Entry, piecesInSector)
		for i := 0; i < int(piecesInSector); i++ {
			var v uint32
			if offW > 0 {
				raw := data[cursor : cursor+offW]
				for k := 0; k < offW; k++ {
					v |= uint32(raw[k]) << uint(8*k)
				}
				cursor += offW
			}
			if v >= uint32(piecesInSector) {
				return nil, fmt.Errorf("%w: local_piece_offset %d >= pieces_in_sector %d", ErrMalformedContentsMap, v, piecesInSector)
			}
			entries[i] = Entry{PieceOffset: PieceOffset(v), Encoded: flags.Test(uint(i))}
		}

		m.buckets[b] = entries
		m.flags[b] = flags
	}

	return m, nil
}

// Encode reproduces the exact on-disk bytes for m, the inverse of
// DecodeContentsMap. Used by tests to check round-tripping.
func (m *ContentsMap) Encode() []byte {
	bitmapBytes := bitmapBytesPerBucket(m.piecesInSector)
	out := make([]byte, EncodedSize(m.piecesInSector))

	cursor := 0
	for b := 0; b < NumSBuckets; b++ {
		bm := out[cursor : cursor+bitmapBytes]
		cursor += bitmapBytes
		for i, e := range m.buckets[b] {
			if e.Encoded {
				bm[i/8] |= 1 << uint(i%8)
			}
		}
		if m.offsetWidth == 0 {
			continue
		}
		for _, e := range m.buckets[b] {
			v := uint32(e.PieceOffset)
			raw := out[cursor : cursor+m.offsetWidth]
			for k := 0; k < m.offsetWidth; k++ {
				raw[k] = byte(v >> uint(8*k))
			}
			cursor += m.offsetWidth
		}
	}

	return out
}

// IterSBucketRecords returns the ordered (piece_offset, encoded) list for
// s-bucket b, of length piecesInSector.
func (m *ContentsMap) IterSBucketRecords(b SBucket) []Entry {
	return m.buckets[b]
}

// EntryAt returns the entry at list position chunkOffset within s-bucket b.
// The list has one entry per piece, in plotter-chosen order; list position
// is NOT the same as physical storage position (see FindEntry). This is
// the lookup CandidateFilter needs: an auditor's ChunkCandidate.chunk_offset
// is this list position, since the auditor enumerates every
// (piece, s-bucket) pair's quality regardless of whether the plotter
// actually stored (Encoded) a chunk there.
func (m *ContentsMap) EntryAt(b SBucket, chunkOffset uint32) (entry Entry, ok bool) {
	entries := m.buckets[b]
	if chunkOffset >= uint32(len(entries)) {
		return Entry{}, false
	}
	return entries[chunkOffset], true
}

// FindEntry locates the entry for piece p within s-bucket b and returns its
// local storage index: its position among only the Encoded == true entries
// that precede it in the list, i.e. its position among the scalars the
// plotter actually wrote to disk for this bucket (Encoded == false entries
// consume no storage; see DESIGN.md "Open Question decisions"). found is
// false if no entry in bucket b references piece p, which should not
// happen on a well-formed sector.
func (m *ContentsMap) FindEntry(b SBucket, p PieceOffset) (entry Entry, localStorageIndex int, found bool) {
	local := 0
	for _, e := range m.buckets[b] {
		if e.PieceOffset == p {
			return e, local, true
		}
		if e.Encoded {
			local++
		}
	}
	return Entry{}, 0, false
}
