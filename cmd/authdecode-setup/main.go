// Command authdecode-setup compiles the AuthDecode circuit and runs the
// Groth16 trusted setup over it, writing the constraint system, proving
// key and verifying key to disk for cmd/authdecode-prove and any verifier
// to load later.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/kysee/authdecode/config"
	"github.com/kysee/authdecode/prover"
)

func main() {
	cfg := config.NewConfig(os.Args[1:]...)

	log.Println("compiling AuthDecodeCircuit and running Groth16 setup...")
	ccs, pk, vk, err := prover.Setup()
	if err != nil {
		log.Fatalf("setup failed: %v", err)
	}
	log.Printf("circuit compiled: %d constraints, %d public variables\n", ccs.GetNbConstraints(), ccs.GetNbPublicVariables())

	for _, dir := range []string{filepath.Dir(cfg.CCSPath), filepath.Dir(cfg.PKPath), filepath.Dir(cfg.VKPath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("creating %s: %v", dir, err)
		}
	}

	if err := prover.WriteArtifacts(cfg.CCSPath, cfg.PKPath, cfg.VKPath, ccs, pk, vk); err != nil {
		log.Fatalf("writing artifacts: %v", err)
	}
	log.Printf("constraint system written to %s\n", cfg.CCSPath)
	log.Printf("proving key written to %s\n", cfg.PKPath)
	log.Printf("verifying key written to %s\n", cfg.VKPath)
}
