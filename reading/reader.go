// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reading implements the ChunkReader and record-metadata reader: the
// synchronous, positional reads a sector handle must answer to reconstruct
// one piece's record chunks and its commitment/witness trailer.
package reading

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/luxfi/proving/postable"
	"github.com/luxfi/proving/sector"
)

// ErrIO wraps any error returned by a ReadAtSync implementation.
// ReadRecordChunks also returns it when the PoS table has no quality for an
// encoded entry.
var ErrIO = errors.New("sector read error")

// ReadAtSync is the synchronous positional reader a sector handle must
// implement. It either fills buf completely from offset or returns an
// error; no seek state is retained between calls. An implementation MAY
// wrap an asynchronous handle internally, but ReadAt itself must never
// suspend the caller (the proving core has no async runtime to suspend
// into).
type ReadAtSync interface {
	ReadAt(buf []byte, offset int64) error
}

// ChunkReader reconstructs, for one piece_offset, the full NumSBuckets-wide
// vector of optional chunks described in spec.md §4.3.
type ChunkReader struct {
	sector   ReadAtSync
	sectorID sector.ID
	metadata *sector.Metadata
	contents *sector.ContentsMap
}

// NewChunkReader builds a ChunkReader bound to one sector handle, its
// decoded contents map, and its metadata.
func NewChunkReader(s ReadAtSync, sectorID sector.ID, metadata *sector.Metadata, contents *sector.ContentsMap) *ChunkReader {
	return &ChunkReader{sector: s, sectorID: sectorID, metadata: metadata, contents: contents}
}

// ReadRecordChunks returns one slot per s-bucket: the stored, unmasked
// chunk when the plotter encoded this (piece, s-bucket) pair, or nil when
// it was left to erasure-coded parity.
func (r *ChunkReader) ReadRecordChunks(pieceOffset sector.PieceOffset, table postable.Table) ([]*sector.Chunk, error) {
	chunks := make([]*sector.Chunk, sector.NumSBuckets)

	for b := 0; b < sector.NumSBuckets; b++ {
		bucket := sector.SBucket(b)
		entry, localIndex, found := r.contents.FindEntry(bucket, pieceOffset)
		if !found || !entry.Encoded {
			continue
		}

		offset := r.metadata.SBucketOffset(bucket) + int64(localIndex)*sector.ScalarBytes

		var raw sector.Chunk
		if err := r.sector.ReadAt(raw[:], offset); err != nil {
			return nil, fmt.Errorf("%w: s_bucket %d piece_offset %d: %v", ErrIO, b, pieceOffset, err)
		}

		quality, ok := table.FindQuality(bucket)
		if !ok {
			// The plotter only sets encoded = true where it recorded a
			// quality to mask with; a PoS table regenerated from the same
			// seed must agree.
			return nil, fmt.Errorf("%w: s_bucket %d has no quality for an encoded entry", ErrIO, b)
		}

		chunk := MaskChunk(raw, r.sectorID, pieceOffset, bucket, quality)
		chunks[b] = &chunk
	}

	return chunks, nil
}

// MaskChunk applies (or, equivalently, reverses: XOR is its own inverse) the
// plotter's chunk mask, a deterministic function of
// (sector_id, piece_offset, s_bucket, quality). A plotter calls this to
// produce the bytes it writes to disk; ChunkReader calls it again on the way
// back out to recover the source chunk. Both sides must derive the same
// mask, so this is exported rather than duplicated.
func MaskChunk(chunk sector.Chunk, sectorID sector.ID, pieceOffset sector.PieceOffset, b sector.SBucket, quality postable.Quality) sector.Chunk {
	mask := deriveMask(sectorID, pieceOffset, b, quality)
	var out sector.Chunk
	for i := range out {
		out[i] = chunk[i] ^ mask[i]
	}
	return out
}

func deriveMask(sectorID sector.ID, pieceOffset sector.PieceOffset, b sector.SBucket, quality postable.Quality) sector.Chunk {
	h := sha256.New()
	h.Write(sectorID[:])
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(pieceOffset))
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(b))
	h.Write(hdr[:])
	h.Write(quality[:])
	sum := h.Sum(nil)
	var out sector.Chunk
	copy(out[:], sum)
	return out
}
