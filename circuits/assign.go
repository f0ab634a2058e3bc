package circuit

import (
	"fmt"

	"github.com/kysee/authdecode/backend"
	"github.com/kysee/authdecode/field"
)

// NewAssignment builds the full witness (private and public) for one
// backend.ProofInput: it right-pads the plaintext to field.ChunkSize bits,
// splits it into field.FieldElements field elements, decomposes each into
// its bit rows, and lays the public deltas out in lockstep.
//
// Every field element occupies 256 bit cells (4 rows of 64), but only
// field.UsableBits of those are real plaintext bits — the first 3 cells of
// the element's first row are always the forced-zero padding
// three_bits_zero constrains. input.Deltas has exactly one entry per real
// plaintext bit (field.ChunkSize total); padding cells get a zero delta,
// which is inert since their paired bit is constrained to 0 regardless.
func NewAssignment(input backend.ProofInput) (*AuthDecodeCircuit, error) {
	if len(input.Deltas) != field.ChunkSize {
		return nil, fmt.Errorf("authdecode: %w: expected %d deltas, got %d", backend.ErrWrongInputLength, field.ChunkSize, len(input.Deltas))
	}
	if len(input.Plaintext) > field.ChunkSize {
		return nil, fmt.Errorf("authdecode: %w: plaintext of %d bits exceeds chunk size %d", backend.ErrWrongInputLength, len(input.Plaintext), field.ChunkSize)
	}

	plaintext := make([]bool, field.ChunkSize)
	copy(plaintext, input.Plaintext)

	c := &AuthDecodeCircuit{
		PlaintextSalt:   input.PlaintextSalt.Inner(),
		EncodingSumSalt: input.EncodingSumSalt.Inner(),
	}
	c.PublicInputs[0] = input.PlaintextHash.Inner()
	c.PublicInputs[1] = input.EncodingSumHash.Inner()
	c.PublicInputs[2] = input.ZeroSum.Inner()
	assignDeltas(c, input.Deltas)

	for elem := 0; elem < field.FieldElements; elem++ {
		bits := plaintext[elem*field.UsableBits : (elem+1)*field.UsableBits]
		fe, err := field.BitsToField(bits)
		if err != nil {
			return nil, fmt.Errorf("authdecode: packing element %d: %w", elem, err)
		}
		all := field.FieldTo256Bits(fe)
		for localRow := 0; localRow < rowsPerElem; localRow++ {
			row := elem*rowsPerElem + localRow
			rowBits := field.RowBits(all, localRow)
			for col := 0; col < field.BitColumns; col++ {
				bit := 0
				if rowBits[col] {
					bit = 1
				}
				c.Bits[row][col] = bit
			}
		}
	}
	return c, nil
}

// NewPublicAssignment builds the public-only half of the witness a verifier
// needs: the per-cell deltas and the three public scalars. Private fields
// (Bits, PlaintextSalt, EncodingSumSalt) are left at their zero value; a
// verifier never has the plaintext or salts to fill them with, and
// frontend.PublicOnly() witnesses ignore them.
func NewPublicAssignment(inputs backend.VerificationInputs) (*AuthDecodeCircuit, error) {
	if len(inputs.Deltas) != field.ChunkSize {
		return nil, fmt.Errorf("authdecode: %w: expected %d deltas, got %d", backend.ErrWrongInputLength, field.ChunkSize, len(inputs.Deltas))
	}

	c := &AuthDecodeCircuit{}
	c.PublicInputs[0] = inputs.PlaintextHash.Inner()
	c.PublicInputs[1] = inputs.EncodingSumHash.Inner()
	c.PublicInputs[2] = inputs.ZeroSum.Inner()
	assignDeltas(c, inputs.Deltas)
	return c, nil
}

// assignDeltas lays deltas (one per real plaintext bit, field.ChunkSize
// total) out onto the circuit's 56x64 delta grid, skipping the 3
// forced-zero padding cells at the start of every field element's first
// row; those padding cells keep a zero delta, which is inert since their
// paired bit is constrained to 0 regardless.
func assignDeltas(c *AuthDecodeCircuit, deltas []field.Element) {
	for row := range c.Deltas {
		for col := range c.Deltas[row] {
			c.Deltas[row][col] = field.Zero().Inner()
		}
	}

	for elem := 0; elem < field.FieldElements; elem++ {
		for u := 0; u < field.UsableBits; u++ {
			// u is the position within the element's usable bits, MSB
			// first, matching the order field.BitsToField packs bits in;
			// +3 skips the forced-zero padding at the start of the
			// element's 256-bit expansion.
			cellIndex := u + 3
			localRow := cellIndex / field.BitColumns
			col := cellIndex % field.BitColumns
			row := elem*rowsPerElem + localRow
			c.Deltas[row][col] = deltas[elem*field.UsableBits+u].Inner()
		}
	}
}
