// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package witness implements the KZG commitment-opening witness builder
// (spec.md §4.5): given the 2x erasure-extended chunk set for a record, in
// evaluation form over the NumSBuckets-th roots of unity, produce an
// opening proof at a single s-bucket index.
package witness

import (
	"fmt"

	kzg "github.com/protolambda/go-kzg"
	"github.com/protolambda/go-kzg/bls"

	"github.com/luxfi/proving/sector"
)

// domainScale is log2(NumSBuckets): NewFFTSettings takes the power-of-two
// exponent of the evaluation domain size.
const domainScale = 8

func init() {
	if 1<<domainScale != sector.NumSBuckets {
		panic("witness: domainScale does not match sector.NumSBuckets")
	}
}

// Builder wraps a caller-supplied KZG trusted setup and produces opening
// witnesses against it. The setup itself ("kzg" in spec.md §6) is borrowed
// for the lifetime of the proving core; Builder never owns or regenerates
// it.
type Builder struct {
	fft      *kzg.FFTSettings
	settings *kzg.KZGSettings
}

// NewBuilder constructs a Builder from an already-generated trusted setup's
// secret G1/G2 points, as produced by whatever ceremony or deterministic
// test setup the caller uses.
func NewBuilder(secretG1 []bls.G1Point, secretG2 []bls.G2Point) (*Builder, error) {
	if len(secretG1) < sector.NumSBuckets {
		return nil, fmt.Errorf("witness: trusted setup has %d G1 points, need at least %d", len(secretG1), sector.NumSBuckets)
	}
	fft := kzg.NewFFTSettings(domainScale)
	settings := kzg.NewKZGSettings(fft, secretG1, secretG2)
	return &Builder{fft: fft, settings: settings}, nil
}

// CreateWitness produces the opening witness for poly at s-bucket b, over
// the NumSBuckets-th roots of unity domain.
func (builder *Builder) CreateWitness(poly sector.Polynomial, b sector.SBucket) (sector.ChunkWitness, error) {
	var out sector.ChunkWitness

	evals := make([]bls.Fr, sector.NumSBuckets)
	for i, chunk := range poly.Evaluations {
		if !bls.FrFrom32(&evals[i], [32]byte(chunk)) {
			return out, fmt.Errorf("witness: chunk at s_bucket %d is not a valid scalar", i)
		}
	}

	coeffs, err := builder.fft.FFT(evals, true)
	if err != nil {
		return out, fmt.Errorf("witness: inverse FFT: %w", err)
	}

	x := builder.fft.ExpandedRootsOfUnity[b]
	proof := builder.settings.ComputeProofSingle(coeffs, x)

	out = bls.ToCompressedG1(proof)
	return out, nil
}

// CommitToPolynomial computes the KZG commitment of poly, for tests that
// need to check a witness against a freshly committed polynomial rather
// than a stored commitment.
func (builder *Builder) CommitToPolynomial(poly sector.Polynomial) (sector.Commitment, error) {
	var out sector.Commitment

	evals := make([]bls.Fr, sector.NumSBuckets)
	for i, chunk := range poly.Evaluations {
		if !bls.FrFrom32(&evals[i], [32]byte(chunk)) {
			return out, fmt.Errorf("witness: chunk at s_bucket %d is not a valid scalar", i)
		}
	}

	coeffs, err := builder.fft.FFT(evals, true)
	if err != nil {
		return out, fmt.Errorf("witness: inverse FFT: %w", err)
	}

	commitment := builder.settings.CommitToPoly(coeffs)
	out = bls.ToCompressedG1(commitment)
	return out, nil
}
