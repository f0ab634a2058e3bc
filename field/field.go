// Package field implements the Field & Bit Primitives component: big-endian
// byte <-> field element <-> bit-vector conversions and the 64-bit limb
// decomposition the circuit package relies on to reassemble a field element
// from its bit columns.
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	// UsableBits is the number of plaintext bits that can be safely packed
	// into one field element without risking modular reduction.
	UsableBits = 253
	// FieldElements is the number of "full" field elements one chunk packs
	// plaintext bits into.
	FieldElements = 14
	// ChunkSize is the number of plaintext bits a single proof covers.
	ChunkSize = UsableBits * FieldElements
	// BitColumns is the width of the circuit's bit grid (one 64-bit limb
	// per row).
	BitColumns = 64
	// UsableRows is the number of rows usable at circuit degree K=6.
	UsableRows = 56
)

// ErrBadFieldEncoding is returned when a byte string cannot be interpreted
// as a field element (wrong length or >= modulus).
var ErrBadFieldEncoding = fmt.Errorf("field: bad encoding")

// Element is a single element of the BN254 scalar field, the native scalar
// field of the gnark circuits in this module.
type Element struct {
	inner fr.Element
}

// Zero returns the additive identity.
func Zero() Element {
	return Element{}
}

// One returns the multiplicative identity.
func One() Element {
	var e fr.Element
	e.SetOne()
	return Element{inner: e}
}

// Random draws a uniformly random field element from crypto/rand, the same
// way gnark-crypto's own blinding-factor sampling does.
func Random() (Element, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return Element{}, fmt.Errorf("field: sampling random element: %w", err)
	}
	return Element{inner: e}, nil
}

// FromBytesBE builds a field element from a big-endian byte string. It
// fails with ErrBadFieldEncoding if the value is not strictly less than the
// field modulus.
func FromBytesBE(b []byte) (Element, error) {
	v := new(big.Int).SetBytes(b)
	if v.Cmp(fr.Modulus()) >= 0 {
		return Element{}, fmt.Errorf("%w: value exceeds field modulus", ErrBadFieldEncoding)
	}
	var e fr.Element
	e.SetBigInt(v)
	return Element{inner: e}, nil
}

// ToBytesBE returns the big-endian, 32-byte representation of e.
func (e Element) ToBytesBE() []byte {
	b := e.inner.Bytes()
	return b[:]
}

// Inner exposes the underlying gnark-crypto element for interop with
// commitment/circuit code that needs raw field arithmetic.
func (e Element) Inner() fr.Element {
	return e.inner
}

// FromInner wraps an already-reduced gnark-crypto element.
func FromInner(fe fr.Element) Element {
	return Element{inner: fe}
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	var r fr.Element
	r.Add(&e.inner, &other.inner)
	return Element{inner: r}
}

// Negate returns -e.
func (e Element) Negate() Element {
	var r fr.Element
	r.Neg(&e.inner)
	return Element{inner: r}
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	var r fr.Element
	r.Sub(&e.inner, &other.inner)
	return Element{inner: r}
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	var r fr.Element
	r.Mul(&e.inner, &other.inner)
	return Element{inner: r}
}

// Equal reports whether e and other represent the same field element.
func (e Element) Equal(other Element) bool {
	return e.inner.Equal(&other.inner)
}

// BitsToField packs up to UsableBits bits (MSB-first) into a field element.
// Fewer than UsableBits bits are treated as right-padded with zero (i.e. the
// supplied bits are the most significant ones).
func BitsToField(bits []bool) (Element, error) {
	if len(bits) > UsableBits {
		return Element{}, fmt.Errorf("%w: %d bits exceeds UsableBits", ErrBadFieldEncoding, len(bits))
	}
	v := new(big.Int)
	for _, b := range bits {
		v.Lsh(v, 1)
		if b {
			v.SetBit(v, 0, 1)
		}
	}
	// right-pad with zero bits up to UsableBits
	v.Lsh(v, uint(UsableBits-len(bits)))
	var e fr.Element
	e.SetBigInt(v)
	return Element{inner: e}, nil
}

// FieldTo256Bits expands e into its 256-bit representation, MSB at index 0.
// For any value that fits within UsableBits, the top 3 bits (indices 0..2)
// are zero.
func FieldTo256Bits(e Element) [256]bool {
	v := e.inner.BigInt(new(big.Int))
	var out [256]bool
	for i := 0; i < 256; i++ {
		out[255-i] = v.Bit(i) == 1
	}
	return out
}

// SplitIntoLimbs slices a 256-bit MSB-first bit vector into four 64-bit
// limbs, each already left-shifted into its position within the 256-bit
// value: limb 0 (rows' highest limb) is multiplied by 2^192, limb 1 by
// 2^128, limb 2 by 2^64, limb 3 by 2^0.
func SplitIntoLimbs(bits [256]bool) [4]Element {
	var limbs [4]Element
	for row := 0; row < 4; row++ {
		v := new(big.Int)
		for c := 0; c < BitColumns; c++ {
			v.Lsh(v, 1)
			if bits[row*BitColumns+c] {
				v.SetBit(v, 0, 1)
			}
		}
		shift := uint(192 - 64*row)
		v.Lsh(v, shift)
		var fe fr.Element
		fe.SetBigInt(v)
		limbs[row] = Element{inner: fe}
	}
	return limbs
}

// RowBits returns the 64 MSB-first bits of one 64-bit limb (one circuit
// row) of e's 256-bit expansion.
func RowBits(all [256]bool, row int) [BitColumns]bool {
	var out [BitColumns]bool
	copy(out[:], all[row*BitColumns:(row+1)*BitColumns])
	return out
}
