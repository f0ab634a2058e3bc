package poseidon

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	gnarktest "github.com/consensys/gnark/test"
	"github.com/kysee/authdecode/field"
	"github.com/stretchr/testify/require"
)

func TestHash2RejectsWrongArity(t *testing.T) {
	h, err := NewHasher(2)
	require.NoError(t, err)

	_, err = h.Hash([]field.Element{field.Zero()})
	require.ErrorIs(t, err, ErrArityMismatch)
}

func TestNewHasherRejectsUnsupportedArity(t *testing.T) {
	_, err := NewHasher(3)
	require.ErrorIs(t, err, ErrArityMismatch)
}

// hash2Circuit exercises the in-circuit gadget against the out-of-circuit
// digest computed in TestInCircuitMatchesOutOfCircuit, proving the two
// views agree bit-for-bit as spec §4.2 requires.
type hash2Circuit struct {
	A, B   frontend.Variable
	Digest frontend.Variable `gnark:",public"`
}

func (c *hash2Circuit) Define(api frontend.API) error {
	g, err := NewGadget(api, 2)
	if err != nil {
		return err
	}
	out, err := g.Hash(api, []frontend.Variable{c.A, c.B})
	if err != nil {
		return err
	}
	api.AssertIsEqual(out, c.Digest)
	return nil
}

func TestInCircuitMatchesOutOfCircuit(t *testing.T) {
	a, b := field.Zero(), field.Zero()

	digest, err := Hash2(a, b)
	require.NoError(t, err)

	assignment := &hash2Circuit{
		A:      a.Inner(),
		B:      b.Inner(),
		Digest: digest.Inner(),
	}

	assert := gnarktest.NewAssert(t)
	assert.SolvingSucceeded(&hash2Circuit{}, assignment, gnarktest.WithCurves(ecc.BN254))
}
