// Command authdecode-prove runs the AuthDecode proving service: it loads
// the compiled circuit and proving key produced by cmd/authdecode-setup,
// then polls a plaintext source for successive chunks and writes one proof
// per chunk to the configured output directory.
package main

import (
	"log"
	"os"
	"time"

	"github.com/kysee/authdecode/config"
	"github.com/kysee/authdecode/prover"
)

func main() {
	cfg := config.NewConfig(os.Args[1:]...)

	log.Println("loading proving key...")
	pk, err := prover.LoadProvingKey(cfg.PKPath)
	if err != nil {
		log.Fatalf("loading proving key: %v", err)
	}

	log.Println("loading constraint system...")
	ccs, err := prover.LoadConstraintSystem(cfg.CCSPath)
	if err != nil {
		log.Fatalf("loading constraint system: %v", err)
	}

	p := prover.NewProver(ccs, pk)

	var source prover.PlaintextSource
	switch cfg.Source {
	case "http":
		source = prover.NewHTTPSource(cfg.SourceURL)
	default:
		source = prover.NewFileSource(cfg.SourcePath)
	}

	service := prover.NewService(source, p, cfg.OutputDir, time.Duration(cfg.PollIntervalMillis)*time.Millisecond)
	if err := service.Run(); err != nil {
		log.Fatalf("proving service stopped: %v", err)
	}
}
