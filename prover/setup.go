package prover

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	circuit "github.com/kysee/authdecode/circuits"
)

// Setup compiles circuit.AuthDecodeCircuit and runs the Groth16 trusted
// setup over it, returning the constraint system and the resulting keys.
// Grounded on the teacher's SetupCircuit, generalized from the fixed
// Eth2ScUpdateCircuit to the circuit package's AuthDecodeCircuit.
func Setup() (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, error) {
	var c circuit.AuthDecodeCircuit
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &c)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("authdecode: compiling circuit: %w", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("authdecode: groth16 setup: %w", err)
	}
	return ccs, pk, vk, nil
}

// WriteArtifacts serializes ccs/pk/vk to the given paths, truncating any
// existing file.
func WriteArtifacts(ccsPath, pkPath, vkPath string, ccs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	if err := writeTo(ccsPath, ccs); err != nil {
		return fmt.Errorf("authdecode: writing constraint system to %s: %w", ccsPath, err)
	}
	if err := writeTo(pkPath, pk); err != nil {
		return fmt.Errorf("authdecode: writing proving key to %s: %w", pkPath, err)
	}
	if err := writeTo(vkPath, vk); err != nil {
		return fmt.Errorf("authdecode: writing verifying key to %s: %w", vkPath, err)
	}
	return nil
}

type writerTo interface {
	WriteTo(w io.Writer) (int64, error)
}

func writeTo(path string, v writerTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = v.WriteTo(f)
	return err
}

// LoadConstraintSystem reads a compiled constraint system back from disk.
func LoadConstraintSystem(path string) (constraint.ConstraintSystem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("authdecode: opening %s: %w", path, err)
	}
	defer f.Close()

	ccs := groth16.NewCS(ecc.BN254)
	if _, err := ccs.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("authdecode: reading constraint system from %s: %w", path, err)
	}
	return ccs, nil
}

// LoadProvingKey reads a proving key back from disk.
func LoadProvingKey(path string) (groth16.ProvingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("authdecode: opening %s: %w", path, err)
	}
	defer f.Close()

	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("authdecode: reading proving key from %s: %w", path, err)
	}
	return pk, nil
}

// LoadVerifyingKey reads a verifying key back from disk.
func LoadVerifyingKey(path string) (groth16.VerifyingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("authdecode: opening %s: %w", path, err)
	}
	defer f.Close()

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("authdecode: reading verifying key from %s: %w", path, err)
	}
	return vk, nil
}
