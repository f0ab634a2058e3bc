package encoding

import (
	"testing"

	"github.com/kysee/authdecode/field"
	"github.com/stretchr/testify/require"
)

func label(v uint64) field.Element {
	b := make([]byte, 32)
	for i := 0; i < 8; i++ {
		b[31-i] = byte(v >> (8 * i))
	}
	fe, err := field.FromBytesBE(b)
	if err != nil {
		panic(err)
	}
	return fe
}

func TestDeltaIsZeroWhenBitIsZero(t *testing.T) {
	zero, one := label(7), label(11)
	e := NewEncoding(zero, one, false)
	require.True(t, e.Delta().Equal(field.Zero()))
}

func TestDeltaIsLabelDiffWhenBitIsOne(t *testing.T) {
	zero, one := label(7), label(11)
	e := NewEncoding(zero, one, true)
	require.True(t, e.Delta().Equal(one.Sub(zero)))
}

func TestNewActiveEncodingsPanicsOnLengthMismatch(t *testing.T) {
	require.Panics(t, func() {
		NewActiveEncodings([]bool{true}, []field.Element{label(1), label(2)}, []field.Element{label(3)}, []BitID{1})
	})
}

func TestZeroSumAndComputeSum(t *testing.T) {
	bits := []bool{true, false, true}
	zeros := []field.Element{label(1), label(2), label(3)}
	ones := []field.Element{label(4), label(5), label(6)}
	ids := []BitID{0, 1, 2}

	orig := NewActiveEncodings(bits, zeros, ones, ids)
	wantZeroSum := zeros[0].Add(zeros[1]).Add(zeros[2])
	require.True(t, orig.ZeroSum().Equal(wantZeroSum))

	conv := Convert(orig)
	wantSum := ones[0].Add(zeros[1]).Add(ones[2])
	require.True(t, ComputeSum(conv).Equal(wantSum))
}

func TestChunkPadsFinalChunk(t *testing.T) {
	bits := []bool{true, false, true}
	zeros := []field.Element{label(1), label(2), label(3)}
	ones := []field.Element{label(4), label(5), label(6)}
	ids := []BitID{0, 1, 2}

	orig := NewActiveEncodings(bits, zeros, ones, ids)
	chunks, err := Chunk(orig, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, 2, chunks[0].Len())
	require.Equal(t, 2, chunks[1].Len())
	// second chunk holds bit index 2 plus one zero-value pad bit.
	require.Equal(t, []bool{true, false}, chunks[1].Bits())
}

func TestChunkRejectsNonPositiveSize(t *testing.T) {
	orig := NewActiveEncodings(nil, nil, nil, nil)
	_, err := Chunk(orig, 0)
	require.Error(t, err)
}
