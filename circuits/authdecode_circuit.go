// Package circuit implements the AuthDecode arithmetic circuit: it proves
// that a committed plaintext and a committed encoding sum are related by a
// public vector of per-bit deltas and a public zero-sum offset, without
// revealing the plaintext or the encodings.
package circuit

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/kysee/authdecode/field"
	"github.com/kysee/authdecode/poseidon"
)

// Layout constants mirror field.BitColumns/field.UsableRows/field.FieldElements:
// one 64-bit limb of plaintext per row, 4 rows reconstruct one field element,
// 14 field elements plus a salt make up the full plaintext commitment input.
const (
	bitColumns    = field.BitColumns
	usableRows    = field.UsableRows
	fieldElements = field.FieldElements
	rowsPerElem   = 4
)

// AuthDecodeCircuit is the AuthDecode relation: the prover knows a plaintext
// (packed into Bits), a plaintext salt and an encoding-sum salt, such that
// hashing the plaintext with its salt yields PublicInputs[0], the dot
// product of Bits with the public Deltas plus the public ZeroSum yields an
// encoding sum that hashes (with the encoding-sum salt) to PublicInputs[1],
// and PublicInputs[2] equals the public ZeroSum it was folded against.
type AuthDecodeCircuit struct {
	// Bits holds the plaintext, 64 bits per row, 4 rows per field element,
	// most-significant bit first within a row and most-significant row
	// first within an element.
	Bits [usableRows][bitColumns]frontend.Variable
	// PlaintextSalt salts the plaintext commitment.
	PlaintextSalt frontend.Variable
	// EncodingSumSalt salts the encoding-sum commitment.
	EncodingSumSalt frontend.Variable

	// Deltas is the public per-bit delta vector, laid out identically to
	// Bits: Deltas[r][c] pairs with Bits[r][c].
	Deltas [usableRows][bitColumns]frontend.Variable `gnark:",public"`

	// PublicInputs holds, in order: plaintext_hash, encoding_sum_hash,
	// zero_sum.
	PublicInputs [3]frontend.Variable `gnark:",public"`
}

func (c *AuthDecodeCircuit) plaintextHash() frontend.Variable   { return c.PublicInputs[0] }
func (c *AuthDecodeCircuit) encodingSumHash() frontend.Variable { return c.PublicInputs[1] }
func (c *AuthDecodeCircuit) zeroSum() frontend.Variable         { return c.PublicInputs[2] }

// Define lays down the circuit's constraints: binariness of every bit
// (G1/binary_check), the top-3-bits-zero guard per element (G6), per-row
// limb composition (G2/compose_limb), per-row delta dot products
// (G3/dot_product), the dot-product and limb-to-element aggregation trees
// (G4/sum4, G5/sum2), and the final hash bindings to the three public
// values.
func (c *AuthDecodeCircuit) Define(api frontend.API) error {
	dotProducts := make([]frontend.Variable, usableRows)
	limbs := make([]frontend.Variable, usableRows)

	for row := 0; row < usableRows; row++ {
		c.binaryCheckRow(api, row)
		if row%rowsPerElem == 0 {
			c.threeBitsZero(api, row)
		}

		limbs[row] = c.composeLimb(api, row)
		dotProducts[row] = c.dotProductRow(api, row)
	}

	encodingSum, err := c.foldSum(api, dotProducts)
	if err != nil {
		return fmt.Errorf("authdecode: fold dot products: %w", err)
	}
	encodingSum = api.Add(encodingSum, c.zeroSum())

	plaintextElements, err := c.foldLimbsToElements(api, limbs)
	if err != nil {
		return fmt.Errorf("authdecode: fold limbs: %w", err)
	}

	if err := c.bindEncodingSumHash(api, encodingSum); err != nil {
		return fmt.Errorf("authdecode: encoding sum hash: %w", err)
	}
	if err := c.bindPlaintextHash(api, plaintextElements); err != nil {
		return fmt.Errorf("authdecode: plaintext hash: %w", err)
	}
	return nil
}

// binaryCheckRow implements G1: every bit in the row satisfies b*(b-1) = 0.
func (c *AuthDecodeCircuit) binaryCheckRow(api frontend.API, row int) {
	for col := 0; col < bitColumns; col++ {
		bit := c.Bits[row][col]
		api.AssertIsEqual(api.Mul(bit, api.Sub(bit, 1)), 0)
	}
}

// threeBitsZero implements G6: the three most significant bits of a field
// element's 256-bit expansion (the first three columns of the element's
// first row) must be zero, since the field can only hold field.UsableBits
// bits safely.
func (c *AuthDecodeCircuit) threeBitsZero(api frontend.API, row int) {
	for col := 0; col < 3; col++ {
		api.AssertIsEqual(c.Bits[row][col], 0)
	}
}

// composeLimb implements G2: composes the row's 64 bits (MSB first) into
// one field element, left-shifted into the position its row occupies within
// the 256-bit element (192, 128, 64 or 0 bits, depending on row%4).
func (c *AuthDecodeCircuit) composeLimb(api frontend.API, row int) frontend.Variable {
	rowInElement := row % rowsPerElem

	sum := frontend.Variable(0)
	for col := 0; col < bitColumns; col++ {
		exp := 255 - bitColumns*rowInElement - col
		sum = api.Add(sum, api.Mul(c.Bits[row][col], powerOfTwo(exp)))
	}
	return sum
}

// powerOfTwo returns the constant 2^exp as a *big.Int, suitable for use as a
// gnark linear-combination coefficient.
func powerOfTwo(exp int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(exp))
}

// dotProductRow implements G3: Sigma_i Deltas[row][i] * Bits[row][i].
func (c *AuthDecodeCircuit) dotProductRow(api frontend.API, row int) frontend.Variable {
	sum := frontend.Variable(0)
	for col := 0; col < bitColumns; col++ {
		sum = api.Add(sum, api.Mul(c.Deltas[row][col], c.Bits[row][col]))
	}
	return sum
}

// foldSum implements the G4/G5 (sum4/sum2) aggregation tree: 56 per-row dot
// products fold down to a single value by repeatedly grouping the current
// level into consecutive chunks of 4 (the trailing chunk falling back to 2
// when the level's length isn't divisible by 4), summing each chunk with
// sum4 or sum2, and recursing on the resulting shorter level
// (56 -> 14 -> 4 -> 1).
func (c *AuthDecodeCircuit) foldSum(api frontend.API, values []frontend.Variable) (frontend.Variable, error) {
	level := values
	for len(level) > 1 {
		next, err := foldLevel(api, level)
		if err != nil {
			return nil, err
		}
		level = next
	}
	return level[0], nil
}

// foldLevel groups values into consecutive chunks of 4, falling back to a
// trailing chunk of 2 when len(values) isn't a multiple of 4, and returns
// one sum per chunk.
func foldLevel(api frontend.API, values []frontend.Variable) ([]frontend.Variable, error) {
	var out []frontend.Variable
	for i := 0; i < len(values); {
		remaining := len(values) - i
		size := 4
		if remaining < 4 {
			size = remaining
		}
		if size != 2 && size != 4 {
			return nil, fmt.Errorf("authdecode: fold chunk of size %d unsupported", size)
		}
		sum := frontend.Variable(0)
		for j := 0; j < size; j++ {
			sum = api.Add(sum, values[i+j])
		}
		out = append(out, sum)
		i += size
	}
	return out, nil
}

// foldLimbsToElements implements the limb-to-element half of the
// aggregation tree: every 4 consecutive row limbs (one field element's
// worth) sum to the reconstructed field element.
func (c *AuthDecodeCircuit) foldLimbsToElements(api frontend.API, limbs []frontend.Variable) ([]frontend.Variable, error) {
	if len(limbs) != usableRows {
		return nil, fmt.Errorf("authdecode: expected %d limbs, got %d", usableRows, len(limbs))
	}
	elements := make([]frontend.Variable, 0, fieldElements)
	for i := 0; i < len(limbs); i += rowsPerElem {
		sum := frontend.Variable(0)
		for j := 0; j < rowsPerElem; j++ {
			sum = api.Add(sum, limbs[i+j])
		}
		elements = append(elements, sum)
	}
	return elements, nil
}

// bindEncodingSumHash hashes (encodingSum, EncodingSumSalt) with the rate-2
// Poseidon gadget and asserts it equals the public encoding_sum_hash.
func (c *AuthDecodeCircuit) bindEncodingSumHash(api frontend.API, encodingSum frontend.Variable) error {
	g, err := poseidon.NewGadget(api, 2)
	if err != nil {
		return err
	}
	digest, err := g.Hash(api, []frontend.Variable{encodingSum, c.EncodingSumSalt})
	if err != nil {
		return err
	}
	api.AssertIsEqual(digest, c.encodingSumHash())
	return nil
}

// bindPlaintextHash hashes the 14 reconstructed field elements plus
// PlaintextSalt with the rate-15 Poseidon gadget and asserts it equals the
// public plaintext_hash.
func (c *AuthDecodeCircuit) bindPlaintextHash(api frontend.API, elements []frontend.Variable) error {
	if len(elements) != fieldElements {
		return fmt.Errorf("authdecode: expected %d plaintext elements, got %d", fieldElements, len(elements))
	}
	g, err := poseidon.NewGadget(api, fieldElements+1)
	if err != nil {
		return err
	}
	inputs := append(append([]frontend.Variable{}, elements...), c.PlaintextSalt)
	digest, err := g.Hash(api, inputs)
	if err != nil {
		return err
	}
	api.AssertIsEqual(digest, c.plaintextHash())
	return nil
}
