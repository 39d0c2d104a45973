// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proving

import (
	"fmt"

	"github.com/luxfi/proving/reading"
	"github.com/luxfi/proving/sector"
)

// Candidates is a pre-iterator handle: the raw candidates an auditor found,
// bound to the sector handle they came from, before the expensive KZG and
// erasure-coding collaborators are wired in. Separating construction this
// way lets a caller decide a sector isn't worth proving before paying for
// that setup (see SPEC_FULL.md §4, grounded in
// original_source/proving.rs's SolutionCandidates).
type Candidates struct {
	publicKey       sector.PublicKey
	sectorID        sector.ID
	sBucket         sector.SBucket
	sector          reading.ReadAtSync
	sectorMetadata  *sector.Metadata
	chunkCandidates []ChunkCandidate
}

// NewCandidates builds a Candidates handle. No I/O happens here.
func NewCandidates(
	publicKey sector.PublicKey,
	sectorID sector.ID,
	sBucket sector.SBucket,
	sectorHandle reading.ReadAtSync,
	sectorMetadata *sector.Metadata,
	chunkCandidates []ChunkCandidate,
) *Candidates {
	return &Candidates{
		publicKey:       publicKey,
		sectorID:        sectorID,
		sBucket:         sBucket,
		sector:          sectorHandle,
		sectorMetadata:  sectorMetadata,
		chunkCandidates: chunkCandidates,
	}
}

// Len returns the total number of candidates, before filtering.
func (c *Candidates) Len() int { return len(c.chunkCandidates) }

// IsEmpty reports whether there are no candidates at all.
func (c *Candidates) IsEmpty() bool { return len(c.chunkCandidates) == 0 }

// IntoSolutions wires in the caller's KZG/erasure-coding/table-generator
// collaborators and returns the lazy SolutionsIterator. A Go method cannot
// itself introduce the RewardAddress type parameter, so this is a free
// function taking the handle, mirroring the Rust original's
// SolutionCandidates::into_solutions.
func IntoSolutions[RewardAddress comparable](
	c *Candidates,
	rewardAddress RewardAddress,
	deps Dependencies,
	opts ...Option,
) (*SolutionsIterator[RewardAddress], error) {
	if deps.ErasureCoding.MaxShards() < sector.NumSBuckets {
		return nil, ErrInvalidErasureCodingInstance
	}

	contentsMapBytes := make([]byte, sector.EncodedSize(c.sectorMetadata.PiecesInSector))
	if err := c.sector.ReadAt(contentsMapBytes, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	contentsMap, err := sector.DecodeContentsMap(contentsMapBytes, c.sectorMetadata.PiecesInSector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToDecodeSectorContentsMap, err)
	}

	winningChunks := filterCandidates(contentsMap, c.sBucket, c.chunkCandidates)

	var bestSolutionDistance *sector.SolutionDistance
	if len(winningChunks) > 0 {
		d := winningChunks[0].SolutionDistance
		bestSolutionDistance = &d
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	reader := reading.NewChunkReader(c.sector, c.sectorID, c.sectorMetadata, contentsMap)

	return &SolutionsIterator[RewardAddress]{
		publicKey:            c.publicKey,
		rewardAddress:        rewardAddress,
		sectorID:             c.sectorID,
		sBucket:              c.sBucket,
		sectorMetadata:       c.sectorMetadata,
		deps:                 deps,
		reader:               reader,
		sectorHandle:         c.sector,
		winningChunks:        winningChunks,
		bestSolutionDistance: bestSolutionDistance,
		config:               cfg,
	}, nil
}

// filterCandidates implements CandidateFilter (spec.md §4.1): it drops any
// candidate whose s-bucket record has encoded = false, preserving order.
func filterCandidates(contentsMap *sector.ContentsMap, sBucket sector.SBucket, candidates []ChunkCandidate) []winningChunk {
	winning := make([]winningChunk, 0, len(candidates))
	for _, candidate := range candidates {
		entry, ok := contentsMap.EntryAt(sBucket, candidate.ChunkOffset)
		if !ok || !entry.Encoded {
			continue
		}
		winning = append(winning, winningChunk{
			ChunkOffset:      candidate.ChunkOffset,
			PieceOffset:      entry.PieceOffset,
			SolutionDistance: candidate.SolutionDistance,
		})
	}
	return winning
}
