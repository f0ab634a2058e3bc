package field

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestFromBytesBERejectsOversizedValue(t *testing.T) {
	b := fr.Modulus().Bytes()

	_, err := FromBytesBE(b)
	require.ErrorIs(t, err, ErrBadFieldEncoding)
}

func TestBitsToFieldRoundTrip(t *testing.T) {
	bits := make([]bool, UsableBits)
	bits[0] = true
	bits[UsableBits-1] = true

	fe, err := BitsToField(bits)
	require.NoError(t, err)

	all := FieldTo256Bits(fe)
	// top 3 bits are unused padding and must be zero for a UsableBits value.
	require.False(t, all[0])
	require.False(t, all[1])
	require.False(t, all[2])
	// bits[0] (the MSB fed in) lands at index 3 of the 256-bit expansion;
	// bits[UsableBits-1] (the LSB fed in) lands at index 255.
	require.True(t, all[3])
	require.True(t, all[255])
}

func TestSplitIntoLimbsComposesBack(t *testing.T) {
	bits := make([]bool, UsableBits)
	bits[10] = true
	fe, err := BitsToField(bits)
	require.NoError(t, err)

	all := FieldTo256Bits(fe)
	limbs := SplitIntoLimbs(all)

	sum := Zero()
	for _, l := range limbs {
		sum = sum.Add(l)
	}
	require.True(t, sum.Equal(fe))
}

func TestBitsToFieldRejectsTooManyBits(t *testing.T) {
	_, err := BitsToField(make([]bool, UsableBits+1))
	require.ErrorIs(t, err, ErrBadFieldEncoding)
}
