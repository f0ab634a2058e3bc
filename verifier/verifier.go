// Package verifier implements the Verifier Driver (spec §4.5): a
// backend.VerifierBackend that checks a batch of proofs against the
// matching VerificationInputs using gnark's Groth16 backend, short-circuiting
// at the first failure.
package verifier

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	authbackend "github.com/kysee/authdecode/backend"
	circuit "github.com/kysee/authdecode/circuits"
	"github.com/kysee/authdecode/field"
)

// Verifier is a backend.VerifierBackend backed by a compiled
// circuit.AuthDecodeCircuit's Groth16 verifying key.
type Verifier struct {
	vk groth16.VerifyingKey
}

// NewVerifier wraps an already-loaded verifying key, as produced by
// cmd/authdecode-setup.
func NewVerifier(vk groth16.VerifyingKey) *Verifier {
	return &Verifier{vk: vk}
}

// ChunkSize reports how many plaintext bits one Proof covers.
func (v *Verifier) ChunkSize() int {
	return field.ChunkSize
}

// Verify checks len(inputs) == len(proofs), then verifies each proof
// against the instance derived from its VerificationInputs the same way
// the prover's NewAssignment derives it, stopping at the first failure.
func (v *Verifier) Verify(inputs []authbackend.VerificationInputs, proofs []authbackend.Proof) error {
	if len(inputs) != len(proofs) {
		return fmt.Errorf("%w: %d inputs but %d proofs", authbackend.ErrWrongInputLength, len(inputs), len(proofs))
	}

	for i := range inputs {
		assignment, err := circuit.NewPublicAssignment(inputs[i])
		if err != nil {
			return fmt.Errorf("authdecode: preparing public witness for proof %d: %w", i, err)
		}

		publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
		if err != nil {
			return &authbackend.VerificationFailedError{ProofIndex: i, Err: fmt.Errorf("building public witness: %w", err)}
		}

		proof := groth16.NewProof(ecc.BN254)
		if _, err := proof.ReadFrom(bytes.NewReader(proofs[i])); err != nil {
			return &authbackend.VerificationFailedError{ProofIndex: i, Err: fmt.Errorf("decoding proof: %w", err)}
		}

		if err := groth16.Verify(proof, v.vk, publicWitness); err != nil {
			return &authbackend.VerificationFailedError{ProofIndex: i, Err: err}
		}
	}
	return nil
}
