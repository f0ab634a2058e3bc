package commitment

import (
	"crypto/rand"
	"testing"

	"github.com/kysee/authdecode/backend"
	"github.com/kysee/authdecode/encoding"
	"github.com/kysee/authdecode/field"
	"github.com/kysee/authdecode/poseidon"
	"github.com/stretchr/testify/require"
)

// fakeBackend commits with real Poseidon hashing (grounding the test on the
// actual commitment relation) but never actually proves; Prove/ChunkSize
// are fixed to a small size so tests don't need to build huge plaintexts.
type fakeBackend struct {
	chunkSize int
}

func randomElement(t *testing.T) field.Element {
	t.Helper()
	b := make([]byte, 31)
	_, err := rand.Read(b)
	require.NoError(t, err)
	fe, err := field.FromBytesBE(append(make([]byte, 1), b...))
	require.NoError(t, err)
	return fe
}

func (f *fakeBackend) CommitPlaintext(plaintext []bool) (field.Element, field.Element, error) {
	salt := field.Zero()
	fe, err := field.BitsToField(plaintext)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	digest, err := poseidon.Hash2(fe, salt)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	return digest, salt, nil
}

func (f *fakeBackend) CommitEncodingSum(sum field.Element) (field.Element, field.Element, error) {
	salt := field.Zero()
	digest, err := poseidon.Hash2(sum, salt)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	return digest, salt, nil
}

func (f *fakeBackend) Prove(inputs []backend.ProofInput) ([]backend.Proof, error) {
	return nil, nil
}

func (f *fakeBackend) ChunkSize() int {
	return f.chunkSize
}

func buildCommitmentData(t *testing.T, n int) CommitmentData {
	t.Helper()
	bits := make([]bool, n)
	zeros := make([]field.Element, n)
	ones := make([]field.Element, n)
	ids := make([]encoding.BitID, n)
	for i := range bits {
		bits[i] = i%3 == 0
		zeros[i] = randomElement(t)
		ones[i] = randomElement(t)
		ids[i] = encoding.BitID(i)
	}
	return NewCommitmentData(bits, zeros, ones, ids)
}

func TestCommitProducesOneChunkPerChunkSize(t *testing.T) {
	data := buildCommitmentData(t, 10)
	pb := &fakeBackend{chunkSize: 4}

	details, err := data.Commit(pb)
	require.NoError(t, err)
	require.Len(t, details.ChunkCommitments, 3)
}

func TestChunkCommitmentDetailsRoundTripsPlaintextBits(t *testing.T) {
	data := buildCommitmentData(t, 6)
	pb := &fakeBackend{chunkSize: 6}

	details, err := data.Commit(pb)
	require.NoError(t, err)
	require.Len(t, details.ChunkCommitments, 1)

	got := details.ChunkCommitments[0].OriginalEncodings.Bits()
	require.Equal(t, data.Encodings.Bits(), got)
}

func TestProofInputsCarryZeroSum(t *testing.T) {
	data := buildCommitmentData(t, 4)
	pb := &fakeBackend{chunkSize: 4}

	details, err := data.Commit(pb)
	require.NoError(t, err)

	zeroSum := data.Encodings.ZeroSum()
	inputs := details.ProofInputs(zeroSum)
	require.Len(t, inputs, 1)
	require.True(t, inputs[0].ZeroSum.Equal(zeroSum))
	require.True(t, inputs[0].PlaintextHash.Equal(details.ChunkCommitments[0].PlaintextHash))
}
