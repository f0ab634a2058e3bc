package poseidon

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	gnarkposeidon2 "github.com/consensys/gnark/std/permutation/poseidon2"
)

// merkleDamgardWidth, nbFullRounds and nbPartialRounds match gnark-crypto's
// ecc/bn254/fr/poseidon2.GetDefaultParameters(): the width-2 permutation
// that poseidon2.NewMerkleDamgardHasher() drives out-of-circuit, 8 full
// rounds and 56 partial rounds. gnark's own std/permutation/poseidon2.
// NewPoseidon2 only wires up BLS12-377's default parameters and errors on
// any other curve, so BN254 needs the explicit constructor instead.
const (
	merkleDamgardWidth = 2
	nbFullRounds       = 8
	nbPartialRounds    = 56
)

// Gadget is the in-circuit counterpart of Hasher. It does not build one wide
// permutation over an arity-sized state; it replicates the same width-2
// Merkle-Damgard chain poseidon2.NewMerkleDamgardHasher() computes
// out-of-circuit, compressing one absorbed field element at a time, so the
// two views agree bit-for-bit on every input (spec §4.2).
type Gadget struct {
	arity int
	perm  *gnarkposeidon2.Permutation
}

// NewGadget constructs the width-2 permutation used for Merkle-Damgard
// compression inside the circuit currently being defined. arity is the
// number of field elements the gadget will absorb, matching Hasher's arity.
func NewGadget(api frontend.API, arity int) (*Gadget, error) {
	if !supportedArities[arity] {
		return nil, fmt.Errorf("%w: unsupported arity %d", ErrArityMismatch, arity)
	}
	perm, err := gnarkposeidon2.NewPoseidon2FromParameters(api, merkleDamgardWidth, nbFullRounds, nbPartialRounds)
	if err != nil {
		return nil, fmt.Errorf("poseidon: new permutation: %w", err)
	}
	return &Gadget{arity: arity, perm: perm}, nil
}

// Hash absorbs exactly g.arity cells by chaining g.perm's Compress one block
// at a time from a zero initial chaining value, the same Merkle-Damgard
// construction Hasher.Hash drives out-of-circuit, and returns the final
// chaining value as the squeezed digest.
func (g *Gadget) Hash(api frontend.API, inputs []frontend.Variable) (frontend.Variable, error) {
	if len(inputs) != g.arity {
		return nil, fmt.Errorf("%w: got %d inputs, want %d", ErrArityMismatch, len(inputs), g.arity)
	}

	state := frontend.Variable(0)
	for _, in := range inputs {
		next, err := g.perm.Compress(state, in)
		if err != nil {
			return nil, fmt.Errorf("poseidon: compress: %w", err)
		}
		state = next
	}
	return state, nil
}
