// Package commitment implements the three-level commitment shape from
// original_source/authdecode/src/prover/commitment.rs: CommitmentData wraps
// the whole plaintext, CommitmentDataChunk is one backend.ProverBackend
// ChunkSize()-sized slice of it, and the results of committing to each
// chunk accumulate into a CommitmentDetails.
package commitment

import (
	"fmt"

	"github.com/kysee/authdecode/backend"
	"github.com/kysee/authdecode/encoding"
	"github.com/kysee/authdecode/field"
)

// CommitmentData is the plaintext and its encodings, prior to chunking.
type CommitmentData struct {
	Encodings encoding.ActiveEncodings[encoding.Original]
}

// NewCommitmentData builds a CommitmentData from parallel plaintext bits,
// their two candidate labels, and bit ids.
func NewCommitmentData(plaintext []bool, zeroLabels, oneLabels []field.Element, ids []encoding.BitID) CommitmentData {
	return CommitmentData{Encodings: encoding.NewActiveEncodings(plaintext, zeroLabels, oneLabels, ids)}
}

// Chunks splits the data into backend.ProverBackend-sized pieces.
func (d CommitmentData) Chunks(chunkSize int) ([]CommitmentDataChunk, error) {
	chunks, err := encoding.Chunk(d.Encodings, chunkSize)
	if err != nil {
		return nil, err
	}
	out := make([]CommitmentDataChunk, len(chunks))
	for i, c := range chunks {
		out[i] = CommitmentDataChunk{Encodings: c}
	}
	return out, nil
}

// Commit chunks the data per pb.ChunkSize() and commits to each chunk,
// returning the aggregate CommitmentDetails.
func (d CommitmentData) Commit(pb backend.ProverBackend) (CommitmentDetails, error) {
	chunks, err := d.Chunks(pb.ChunkSize())
	if err != nil {
		return CommitmentDetails{}, err
	}

	details := make([]ChunkCommitmentDetails, len(chunks))
	for i, c := range chunks {
		cd, err := c.Commit(pb)
		if err != nil {
			return CommitmentDetails{}, fmt.Errorf("commitment: chunk %d: %w", i, err)
		}
		details[i] = cd
	}
	return CommitmentDetails{ChunkCommitments: details}, nil
}

// CommitmentDataChunk is one chunk's worth of plaintext bits and their
// original (pre-conversion) encodings.
type CommitmentDataChunk struct {
	Encodings encoding.ActiveEncodings[encoding.Original]
}

// Commit converts this chunk's encodings, sums them, and asks the backend
// to commit to both the plaintext and the encoding sum.
func (c CommitmentDataChunk) Commit(pb backend.ProverBackend) (ChunkCommitmentDetails, error) {
	converted := encoding.Convert(c.Encodings)
	sum := encoding.ComputeSum(converted)

	plaintextHash, plaintextSalt, err := pb.CommitPlaintext(c.Encodings.Bits())
	if err != nil {
		return ChunkCommitmentDetails{}, fmt.Errorf("commitment: commit plaintext: %w", err)
	}

	encodingSumHash, encodingSumSalt, err := pb.CommitEncodingSum(sum)
	if err != nil {
		return ChunkCommitmentDetails{}, fmt.Errorf("commitment: commit encoding sum: %w", err)
	}

	return ChunkCommitmentDetails{
		PlaintextHash:      plaintextHash,
		PlaintextSalt:      plaintextSalt,
		OriginalEncodings:  c.Encodings,
		ConvertedEncodings: converted,
		EncodingSum:        sum,
		EncodingSumHash:    encodingSumHash,
		EncodingSumSalt:    encodingSumSalt,
	}, nil
}

// ChunkCommitmentDetails is an AuthDecode commitment to a single chunk of
// the plaintext along with everything needed to later build a ProofInput
// for it.
type ChunkCommitmentDetails struct {
	PlaintextHash field.Element
	PlaintextSalt field.Element

	OriginalEncodings  encoding.ActiveEncodings[encoding.Original]
	ConvertedEncodings encoding.ActiveEncodings[encoding.Converted]

	EncodingSum     field.Element
	EncodingSumHash field.Element
	EncodingSumSalt field.Element
}

// IDs returns the bit ids of this chunk, in order.
func (c ChunkCommitmentDetails) IDs() []encoding.BitID {
	return c.OriginalEncodings.IDs()
}

// ProofInput assembles the backend.ProofInput for this chunk given the
// public zero_sum offset. The circuit checks this chunk's EncodingSum
// against zero_sum plus this chunk's delta dot product, so zeroSum must be
// Sigma zero_labels over this chunk's encodings
// (c.OriginalEncodings.ZeroSum()).
func (c ChunkCommitmentDetails) ProofInput(zeroSum field.Element) backend.ProofInput {
	return backend.ProofInput{
		Plaintext:       c.OriginalEncodings.Bits(),
		PlaintextSalt:   c.PlaintextSalt,
		EncodingSumSalt: c.EncodingSumSalt,
		Deltas:          c.OriginalEncodings.Deltas(),
		PlaintextHash:   c.PlaintextHash,
		EncodingSumHash: c.EncodingSumHash,
		ZeroSum:         zeroSum,
	}
}

// VerificationInputs extracts the public-only subset of this chunk's proof
// input, for handing to a backend.VerifierBackend.
func (c ChunkCommitmentDetails) VerificationInputs(zeroSum field.Element) backend.VerificationInputs {
	return backend.VerificationInputs{
		Deltas:          c.OriginalEncodings.Deltas(),
		PlaintextHash:   c.PlaintextHash,
		EncodingSumHash: c.EncodingSumHash,
		ZeroSum:         zeroSum,
	}
}

// CommitmentDetails is an AuthDecode commitment to plaintext of arbitrary
// length: the collection of its per-chunk commitments.
type CommitmentDetails struct {
	ChunkCommitments []ChunkCommitmentDetails
}

// OriginalEncodings concatenates the bits and bit ids of every chunk, in
// order, including the zero-value padding bits Chunk appended to the final
// chunk. The labels are not recovered: every label in the result is zero.
func (d CommitmentDetails) OriginalEncodings() encoding.ActiveEncodings[encoding.Original] {
	var bits []bool
	var ids []encoding.BitID
	for _, c := range d.ChunkCommitments {
		bits = append(bits, c.OriginalEncodings.Bits()...)
		ids = append(ids, c.OriginalEncodings.IDs()...)
	}
	// zero-value labels are sufficient here: callers needing the labels
	// themselves hold ChunkCommitmentDetails directly; this accessor only
	// reconstructs bits/ids, matching its original_source counterpart's use
	// (bit_ids iteration), not label recovery.
	zeros := make([]field.Element, len(bits))
	ones := make([]field.Element, len(bits))
	return encoding.NewActiveEncodings(bits, zeros, ones, ids)
}

// ProofInputs assembles one backend.ProofInput per chunk.
func (d CommitmentDetails) ProofInputs(zeroSum field.Element) []backend.ProofInput {
	inputs := make([]backend.ProofInput, len(d.ChunkCommitments))
	for i, c := range d.ChunkCommitments {
		inputs[i] = c.ProofInput(zeroSum)
	}
	return inputs
}

// VerificationInputs assembles one backend.VerificationInputs per chunk.
func (d CommitmentDetails) VerificationInputs(zeroSum field.Element) []backend.VerificationInputs {
	inputs := make([]backend.VerificationInputs, len(d.ChunkCommitments))
	for i, c := range d.ChunkCommitments {
		inputs[i] = c.VerificationInputs(zeroSum)
	}
	return inputs
}
