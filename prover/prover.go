// Package prover implements the Prover Driver (spec §4.5): a
// backend.ProverBackend built on gnark's Groth16 backend, plus the proving
// service that turns a stream of plaintext chunks into Proofs.
package prover

import (
	"bytes"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	gnarkbackend "github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/kysee/authdecode/backend"
	circuit "github.com/kysee/authdecode/circuits"
	"github.com/kysee/authdecode/field"
	"github.com/kysee/authdecode/poseidon"
	"github.com/rs/zerolog"
)

// Prover is a backend.ProverBackend backed by a compiled
// circuit.AuthDecodeCircuit constraint system and its Groth16 proving key.
type Prover struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey

	// solverLogger routes groth16's own solver logging through zerolog,
	// the same way eth2_sc_update_test.go wires solver.WithLogger.
	solverLogger zerolog.Logger
}

// NewProver wraps an already-compiled constraint system and proving key,
// as produced by cmd/authdecode-setup.
func NewProver(ccs constraint.ConstraintSystem, pk groth16.ProvingKey) *Prover {
	return &Prover{
		ccs:          ccs,
		pk:           pk,
		solverLogger: zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger(),
	}
}

// ChunkSize reports how many plaintext bits one Proof covers.
func (p *Prover) ChunkSize() int {
	return field.ChunkSize
}

// CommitPlaintext pads plaintext to ChunkSize bits, packs it into
// field.FieldElements field elements, samples a fresh salt, and returns the
// Poseidon-15 commitment to (fe0..fe13, salt).
func (p *Prover) CommitPlaintext(plaintext []bool) (field.Element, field.Element, error) {
	if len(plaintext) > field.ChunkSize {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: plaintext of %d bits exceeds chunk size %d", backend.ErrWrongInputLength, len(plaintext), field.ChunkSize)
	}
	padded := make([]bool, field.ChunkSize)
	copy(padded, plaintext)

	salt, err := field.Random()
	if err != nil {
		return field.Element{}, field.Element{}, fmt.Errorf("authdecode: sampling plaintext salt: %w", err)
	}

	var elems [15]field.Element
	for i := 0; i < field.FieldElements; i++ {
		fe, err := field.BitsToField(padded[i*field.UsableBits : (i+1)*field.UsableBits])
		if err != nil {
			return field.Element{}, field.Element{}, fmt.Errorf("authdecode: packing element %d: %w", i, err)
		}
		elems[i] = fe
	}
	elems[field.FieldElements] = salt

	digest, err := poseidon.Hash15(elems)
	if err != nil {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: plaintext commitment: %v", backend.ErrPoseidonArityMismatch, err)
	}
	return digest, salt, nil
}

// CommitEncodingSum samples a fresh salt and returns the Poseidon-2
// commitment to (encodingSum, salt).
func (p *Prover) CommitEncodingSum(encodingSum field.Element) (field.Element, field.Element, error) {
	salt, err := field.Random()
	if err != nil {
		return field.Element{}, field.Element{}, fmt.Errorf("authdecode: sampling encoding sum salt: %w", err)
	}
	digest, err := poseidon.Hash2(encodingSum, salt)
	if err != nil {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: encoding sum commitment: %v", backend.ErrPoseidonArityMismatch, err)
	}
	return digest, salt, nil
}

// Prove generates one Proof per input, in order, stopping at the first
// failure (§5: chunks are proved in input order).
func (p *Prover) Prove(inputs []backend.ProofInput) ([]backend.Proof, error) {
	proofs := make([]backend.Proof, 0, len(inputs))
	for i, input := range inputs {
		assignment, err := circuit.NewAssignment(input)
		if err != nil {
			return nil, fmt.Errorf("authdecode: preparing witness for chunk %d: %w", i, err)
		}

		witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
		if err != nil {
			return nil, &backend.ProvingBackendError{ChunkIndex: i, Err: fmt.Errorf("building witness: %w", err)}
		}

		proof, err := groth16.Prove(p.ccs, p.pk, witness,
			gnarkbackend.WithSolverOptions(solver.WithLogger(p.solverLogger)))
		if err != nil {
			return nil, &backend.ProvingBackendError{ChunkIndex: i, Err: err}
		}

		var buf bytes.Buffer
		if _, err := proof.WriteTo(&buf); err != nil {
			return nil, &backend.ProvingBackendError{ChunkIndex: i, Err: fmt.Errorf("serializing proof: %w", err)}
		}
		proofs = append(proofs, buf.Bytes())
	}
	return proofs, nil
}
