package verifier

import (
	"bytes"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	authbackend "github.com/kysee/authdecode/backend"
	circuit "github.com/kysee/authdecode/circuits"
	"github.com/kysee/authdecode/field"
	"github.com/kysee/authdecode/poseidon"
	"github.com/stretchr/testify/require"
)

var (
	setupOnce sync.Once
	testPK    groth16.ProvingKey
	testVK    groth16.VerifyingKey
	testCCS   constraint.ConstraintSystem
)

func testSetup(t *testing.T) (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey) {
	t.Helper()
	setupOnce.Do(func() {
		logger.Disable()
		var c circuit.AuthDecodeCircuit
		ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &c)
		if err != nil {
			t.Fatalf("compiling circuit: %v", err)
		}
		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			t.Fatalf("groth16 setup: %v", err)
		}
		testCCS, testPK, testVK = ccs, pk, vk
	})
	return testCCS, testPK, testVK
}

func randomPlaintext(t *testing.T) []bool {
	t.Helper()
	raw := make([]byte, (field.ChunkSize+7)/8)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	bits := make([]bool, field.ChunkSize)
	for i := range bits {
		byteIdx, bitIdx := i/8, i%8
		bits[i] = (raw[byteIdx]>>(7-bitIdx))&1 == 1
	}
	return bits
}

func randomElement(t *testing.T) field.Element {
	t.Helper()
	e, err := field.Random()
	require.NoError(t, err)
	return e
}

// validProofAndInputs builds one self-consistent (proof, VerificationInputs)
// pair end to end, matching what a prover.Prover would produce.
func validProofAndInputs(t *testing.T) (authbackend.Proof, authbackend.VerificationInputs) {
	t.Helper()
	ccs, pk, _ := testSetup(t)

	plaintext := randomPlaintext(t)
	plaintextSalt := randomElement(t)

	var elems [15]field.Element
	for i := 0; i < field.FieldElements; i++ {
		fe, err := field.BitsToField(plaintext[i*field.UsableBits : (i+1)*field.UsableBits])
		require.NoError(t, err)
		elems[i] = fe
	}
	elems[field.FieldElements] = plaintextSalt
	plaintextHash, err := poseidon.Hash15(elems)
	require.NoError(t, err)

	deltas := make([]field.Element, field.ChunkSize)
	encodingSum := field.Zero()
	for i, bit := range plaintext {
		deltas[i] = randomElement(t)
		if bit {
			encodingSum = encodingSum.Add(deltas[i])
		}
	}
	zeroSum := randomElement(t)
	encodingSum = encodingSum.Add(zeroSum)

	encodingSumSalt := randomElement(t)
	encodingSumHash, err := poseidon.Hash2(encodingSum, encodingSumSalt)
	require.NoError(t, err)

	input := authbackend.ProofInput{
		Plaintext:       plaintext,
		PlaintextSalt:   plaintextSalt,
		EncodingSumSalt: encodingSumSalt,
		Deltas:          deltas,
		PlaintextHash:   plaintextHash,
		EncodingSumHash: encodingSumHash,
		ZeroSum:         zeroSum,
	}
	assignment, err := circuit.NewAssignment(input)
	require.NoError(t, err)

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	require.NoError(t, err)

	proof, err := groth16.Prove(ccs, pk, witness)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = proof.WriteTo(&buf)
	require.NoError(t, err)

	return authbackend.Proof(buf.Bytes()), authbackend.VerificationInputs{
		Deltas:          deltas,
		PlaintextHash:   plaintextHash,
		EncodingSumHash: encodingSumHash,
		ZeroSum:         zeroSum,
	}
}

func TestVerifyAcceptsValidProof(t *testing.T) {
	_, _, vk := testSetup(t)
	proof, inputs := validProofAndInputs(t)

	v := NewVerifier(vk)
	err := v.Verify([]authbackend.VerificationInputs{inputs}, []authbackend.Proof{proof})
	require.NoError(t, err)
}

func TestVerifyRejectsTamperedZeroSum(t *testing.T) {
	_, _, vk := testSetup(t)
	proof, inputs := validProofAndInputs(t)
	inputs.ZeroSum = inputs.ZeroSum.Add(field.One())

	v := NewVerifier(vk)
	err := v.Verify([]authbackend.VerificationInputs{inputs}, []authbackend.Proof{proof})
	require.ErrorIs(t, err, authbackend.ErrVerificationFailed)
}

func TestVerifyRejectsLengthMismatch(t *testing.T) {
	_, _, vk := testSetup(t)
	_, inputs := validProofAndInputs(t)

	v := NewVerifier(vk)
	err := v.Verify([]authbackend.VerificationInputs{inputs, inputs}, []authbackend.Proof{[]byte("only one")})
	require.ErrorIs(t, err, authbackend.ErrWrongInputLength)
}

func TestChunkSizeMatchesFieldConstant(t *testing.T) {
	_, _, vk := testSetup(t)
	v := NewVerifier(vk)
	require.Equal(t, field.ChunkSize, v.ChunkSize())
}
