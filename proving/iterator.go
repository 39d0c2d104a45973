// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proving

import (
	"fmt"

	"github.com/luxfi/log"

	"github.com/luxfi/proving/metrics"
	"github.com/luxfi/proving/postable"
	"github.com/luxfi/proving/reading"
	"github.com/luxfi/proving/sector"
)

// Metrics are the optional counters a SolutionsIterator reports to, mirroring
// the teacher's poll.NewSet(factory, log, registerer) convention of taking a
// prometheus.Registerer-backed collection rather than owning one.
type Metrics struct {
	SolutionsEmitted  metrics.Counter
	CandidatesFailed  metrics.Counter
}

// NewMetrics registers a SolutionsIterator's counters against reg.
func NewMetrics(reg metrics.Registry) *Metrics {
	return &Metrics{
		SolutionsEmitted: reg.NewCounter("proving_solutions_emitted"),
		CandidatesFailed: reg.NewCounter("proving_candidates_failed"),
	}
}

// Config holds a SolutionsIterator's optional ambient collaborators.
type Config struct {
	Logger  log.Logger
	Metrics *Metrics
}

func defaultConfig() Config {
	return Config{Logger: log.NewNoOpLogger()}
}

// Option configures a SolutionsIterator at construction time.
type Option func(*Config)

// WithLogger attaches a structured logger. Never Fatal/Crit: a per-candidate
// failure must never abort the caller's block-production loop.
func WithLogger(logger log.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithMetrics attaches a counter set.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) { c.Metrics = m }
}

// Result is one item a SolutionsIterator yields: either a Solution or a
// typed per-candidate error. Exactly one of Err != nil or a populated
// Solution holds.
type Result[RewardAddress comparable] struct {
	Solution Solution[RewardAddress]
	Err      error
}

// Solutions is the narrow interface spec.md's "ProvableSolutions" trait
// surface is reproduced as (SPEC_FULL.md §4): exact remaining length plus a
// fixed best-distance, so a block-production loop can be written against it
// without depending on the concrete iterator type.
type Solutions[RewardAddress comparable] interface {
	// Next pops the next candidate and attempts to materialize a solution.
	// ok is false once the iterator is exhausted.
	Next() (Result[RewardAddress], bool)

	// Len is the count of not-yet-yielded candidates.
	Len() int

	// BestSolutionDistance is fixed at construction and never changes.
	BestSolutionDistance() *sector.SolutionDistance
}

// SolutionsIterator is the lazy, pull-based producer at the end of the
// proving pipeline (spec.md §2 item 6, §4.7).
type SolutionsIterator[RewardAddress comparable] struct {
	publicKey      sector.PublicKey
	rewardAddress  RewardAddress
	sectorID       sector.ID
	sBucket        sector.SBucket
	sectorMetadata *sector.Metadata

	deps         Dependencies
	reader       *reading.ChunkReader
	sectorHandle reading.ReadAtSync

	winningChunks        []winningChunk
	bestSolutionDistance *sector.SolutionDistance

	config Config
}

var _ Solutions[int] = (*SolutionsIterator[int])(nil)

// Len implements Solutions.
func (it *SolutionsIterator[RewardAddress]) Len() int {
	return len(it.winningChunks)
}

// BestSolutionDistance implements Solutions.
func (it *SolutionsIterator[RewardAddress]) BestSolutionDistance() *sector.SolutionDistance {
	return it.bestSolutionDistance
}

// Next implements Solutions. It pops the front winning chunk and attempts to
// materialize a solution; per-candidate failures are returned as a Result
// with Err set rather than aborting iteration (spec.md §4.7, §7).
func (it *SolutionsIterator[RewardAddress]) Next() (Result[RewardAddress], bool) {
	if len(it.winningChunks) == 0 {
		return Result[RewardAddress]{}, false
	}

	chunk := it.winningChunks[0]
	it.winningChunks = it.winningChunks[1:]

	solution, err := it.buildSolution(chunk)
	if err != nil {
		it.config.Logger.Warn("proving: candidate failed", "piece_offset", chunk.PieceOffset, "chunk_offset", chunk.ChunkOffset, "error", err)
		if it.config.Metrics != nil {
			it.config.Metrics.CandidatesFailed.Inc()
		}
		return Result[RewardAddress]{Err: err}, true
	}

	if it.config.Metrics != nil {
		it.config.Metrics.SolutionsEmitted.Inc()
	}
	return Result[RewardAddress]{Solution: solution}, true
}

func (it *SolutionsIterator[RewardAddress]) buildSolution(chunk winningChunk) (Solution[RewardAddress], error) {
	var zero Solution[RewardAddress]

	seed := postable.DeriveEvaluationSeed(it.sectorID, chunk.PieceOffset, it.sectorMetadata.HistorySize)
	table, err := it.deps.TableGenerator(seed)
	if err != nil {
		return zero, fmt.Errorf("proving: generate pos table for piece %d: %w", chunk.PieceOffset, err)
	}

	recordChunks, err := it.reader.ReadRecordChunks(chunk.PieceOffset, table)
	if err != nil {
		return zero, err
	}

	sourceChunksPolynomial, err := it.deps.ErasureCoding.RecoverPolynomial(recordChunks)
	if err != nil {
		return zero, &FailedToErasureDecodeRecordError{PieceOffset: chunk.PieceOffset, Err: err}
	}

	// NOTE: plot consistency is not checksum-verified here; the consensus
	// layer verifies the resulting proof anyway (spec.md §1 Non-goals).
	commitment, recordWitness, err := reading.ReadRecordMetadata(it.sectorHandle, it.sectorMetadata, chunk.PieceOffset)
	if err != nil {
		return zero, err
	}

	proof, ok := table.FindProof(it.sBucket)
	if !ok {
		return zero, fmt.Errorf("proving: no proof of space for winning s_bucket %d at piece %d", it.sBucket, chunk.PieceOffset)
	}

	chunkWitness, err := it.deps.Builder.CreateWitness(sourceChunksPolynomial, it.sBucket)
	if err != nil {
		return zero, &FailedToCreateChunkWitnessError{PieceOffset: chunk.PieceOffset, ChunkOffset: chunk.ChunkOffset, Err: err}
	}

	return Solution[RewardAddress]{
		PublicKey:        it.publicKey,
		RewardAddress:    it.rewardAddress,
		SectorIndex:      it.sectorMetadata.SectorIndex,
		HistorySize:      it.sectorMetadata.HistorySize,
		PieceOffset:      chunk.PieceOffset,
		RecordCommitment: commitment,
		RecordWitness:    recordWitness,
		Chunk:            sourceChunksPolynomial.Evaluations[it.sBucket],
		ChunkWitness:     chunkWitness,
		ProofOfSpace:     proof,
	}, nil
}

// NewSolutionsIterator is the merged one-shot constructor spec.md §6
// describes: equivalent to NewCandidates followed by IntoSolutions.
func NewSolutionsIterator[RewardAddress comparable](
	publicKey sector.PublicKey,
	rewardAddress RewardAddress,
	sectorID sector.ID,
	sBucket sector.SBucket,
	sectorHandle reading.ReadAtSync,
	sectorMetadata *sector.Metadata,
	chunkCandidates []ChunkCandidate,
	deps Dependencies,
	opts ...Option,
) (*SolutionsIterator[RewardAddress], error) {
	candidates := NewCandidates(publicKey, sectorID, sBucket, sectorHandle, sectorMetadata, chunkCandidates)
	return IntoSolutions(candidates, rewardAddress, deps, opts...)
}
