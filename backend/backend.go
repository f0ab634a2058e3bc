// Package backend defines the prover/verifier contract AuthDecode's circuit
// layer is built against: the opaque Proof type, the per-chunk circuit
// inputs, and the error taxonomy every concrete backend returns.
//
// Grounded on original_source/authdecode/src/backend/traits.rs and the
// ProofInput usage in src/backend/halo2/prover.rs's prepare_circuit_input.
package backend

import (
	"errors"
	"fmt"

	"github.com/kysee/authdecode/field"
)

// Proof is an opaque, backend-specific proof blob.
type Proof []byte

// ProofInput is everything a ProverBackend needs to produce one Proof for
// one chunk: the plaintext bits themselves (pre-padding), the salts used in
// both commitments, the per-bit deltas, and the three public values the
// circuit binds (plaintext_hash, encoding_sum_hash, zero_sum).
type ProofInput struct {
	Plaintext       []bool
	PlaintextSalt   field.Element
	EncodingSumSalt field.Element
	Deltas          []field.Element
	PlaintextHash   field.Element
	EncodingSumHash field.Element
	ZeroSum         field.Element
}

// VerificationInputs is the subset of ProofInput a verifier needs: the
// circuit's public values alone, without any prover-side secrets.
type VerificationInputs struct {
	Deltas          []field.Element
	PlaintextHash   field.Element
	EncodingSumHash field.Element
	ZeroSum         field.Element
}

// Sentinel errors, one per original_source ProverError/VerifierError variant
// this module actually produces.
var (
	// ErrWrongInputLength is returned when plaintext, deltas or any other
	// per-chunk slice does not match the backend's configured chunk size.
	ErrWrongInputLength = errors.New("backend: wrong input length")
	// ErrBadFieldEncoding mirrors field.ErrBadFieldEncoding for callers that
	// only import this package.
	ErrBadFieldEncoding = field.ErrBadFieldEncoding
	// ErrPoseidonArityMismatch is returned when an internal hash call is
	// built with the wrong number of inputs; it should never surface to a
	// correctly-wired caller.
	ErrPoseidonArityMismatch = errors.New("backend: poseidon arity mismatch")
	// ErrProvingBackendError wraps an underlying proving-system failure
	// (e.g. groth16.Prove returning an error).
	ErrProvingBackendError = errors.New("backend: proving backend error")
	// ErrVerificationFailed indicates the proof did not verify against the
	// supplied public inputs; it is not a wiring bug.
	ErrVerificationFailed = errors.New("backend: verification failed")
	// ErrInternal covers backend invariant violations that indicate a bug
	// rather than bad input (e.g. chunking math producing the wrong count).
	ErrInternal = errors.New("backend: internal error")
)

// ProvingBackendError carries the underlying proving-system error, if the
// backend can identify which chunk or gate it came from.
type ProvingBackendError struct {
	ChunkIndex int
	Err        error
}

func (e *ProvingBackendError) Error() string {
	return fmt.Sprintf("backend: proving failed for chunk %d: %v", e.ChunkIndex, e.Err)
}

func (e *ProvingBackendError) Unwrap() error {
	return ErrProvingBackendError
}

// VerificationFailedError names which proof (by index) failed verification.
type VerificationFailedError struct {
	ProofIndex int
	Err        error
}

func (e *VerificationFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend: proof %d failed verification: %v", e.ProofIndex, e.Err)
	}
	return fmt.Sprintf("backend: proof %d failed verification", e.ProofIndex)
}

func (e *VerificationFailedError) Unwrap() error {
	return ErrVerificationFailed
}

// ProverBackend produces zk proofs of the AuthDecode relation.
type ProverBackend interface {
	// CommitPlaintext pads plaintext to ChunkSize bits, samples a salt, and
	// returns the Poseidon commitment plus the salt used.
	CommitPlaintext(plaintext []bool) (digest, salt field.Element, err error)

	// CommitEncodingSum samples a salt and returns the Poseidon commitment
	// to (encodingSum, salt).
	CommitEncodingSum(encodingSum field.Element) (digest, salt field.Element, err error)

	// Prove generates one Proof per ProofInput.
	Prove(inputs []ProofInput) ([]Proof, error)

	// ChunkSize reports how many plaintext bits fit in one chunk.
	ChunkSize() int
}

// VerifierBackend verifies zk proofs of the AuthDecode relation.
type VerifierBackend interface {
	// Verify checks each proof against its corresponding VerificationInputs.
	// Verification stops at the first failure.
	Verify(inputs []VerificationInputs, proofs []Proof) error

	// ChunkSize reports how many plaintext bits fit in one chunk.
	ChunkSize() int
}
