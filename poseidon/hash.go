// Package poseidon provides the fixed-arity Poseidon Hash Adapter: an
// out-of-circuit sponge (this file) and an in-circuit gadget (gadget.go)
// that MUST agree bit-for-bit on every input, for arities 1, 2 and 15.
package poseidon

import (
	"fmt"

	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	"github.com/kysee/authdecode/field"
)

// ErrArityMismatch is returned when the number of inputs handed to a
// fixed-arity hasher does not match the arity it was constructed with.
var ErrArityMismatch = fmt.Errorf("poseidon: arity mismatch")

// supportedArities are the only widths the AuthDecode core uses: rate 1 for
// ancillary hashing, rate 2 for the encoding-sum commitment, rate 15 for the
// plaintext commitment (14 field elements plus the plaintext salt).
var supportedArities = map[int]bool{1: true, 2: true, 15: true}

// Hasher is a fixed-arity, out-of-circuit Poseidon sponge over the BN254
// scalar field.
type Hasher struct {
	arity int
}

// NewHasher returns a Hasher fixed to the given arity (1, 2, or 15).
func NewHasher(arity int) (*Hasher, error) {
	if !supportedArities[arity] {
		return nil, fmt.Errorf("%w: unsupported arity %d", ErrArityMismatch, arity)
	}
	return &Hasher{arity: arity}, nil
}

// Hash absorbs exactly h.arity field elements and squeezes one digest.
func (h *Hasher) Hash(inputs []field.Element) (field.Element, error) {
	if len(inputs) != h.arity {
		return field.Element{}, fmt.Errorf("%w: got %d inputs, want %d", ErrArityMismatch, len(inputs), h.arity)
	}

	sponge := poseidon2.NewMerkleDamgardHasher()
	for _, in := range inputs {
		b := in.ToBytesBE()
		sponge.Write(b)
	}
	digest := sponge.Sum(nil)

	var fe bn254fr.Element
	fe.SetBytes(digest)
	return field.FromInner(fe), nil
}

// Hash1 hashes a single field element (ancillary use only, per spec §4.2).
func Hash1(a field.Element) (field.Element, error) {
	h, err := NewHasher(1)
	if err != nil {
		return field.Element{}, err
	}
	return h.Hash([]field.Element{a})
}

// Hash2 hashes two field elements: used for the encoding-sum commitment
// (spec §3: encoding_sum_hash = Poseidon2(encoding_sum, encoding_sum_salt)).
func Hash2(a, b field.Element) (field.Element, error) {
	h, err := NewHasher(2)
	if err != nil {
		return field.Element{}, err
	}
	return h.Hash([]field.Element{a, b})
}

// Hash15 hashes fifteen field elements: used for the plaintext commitment
// (spec §3: plaintext_hash = Poseidon15(fe0..fe13, plaintext_salt)).
func Hash15(inputs [15]field.Element) (field.Element, error) {
	h, err := NewHasher(15)
	if err != nil {
		return field.Element{}, err
	}
	return h.Hash(inputs[:])
}
