package prover

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kysee/authdecode/backend"
	"github.com/kysee/authdecode/field"
)

// Service polls a PlaintextSource for successive chunks, proves each one,
// and writes the resulting Proof to OutputDir. It mirrors the teacher's
// Relayer.Run fetch -> generate-proof -> write-output loop, with
// AuthDecode chunk proofs in place of sync-committee update proofs.
type Service struct {
	Source    PlaintextSource
	Prover    *Prover
	OutputDir string
	// PollInterval is how long Run sleeps after a chunk is not yet
	// available before retrying.
	PollInterval time.Duration

	Metrics *Metrics
}

// NewService wires a PlaintextSource and Prover into a proving service.
func NewService(source PlaintextSource, p *Prover, outputDir string, pollInterval time.Duration) *Service {
	return &Service{
		Source:       source,
		Prover:       p,
		OutputDir:    outputDir,
		PollInterval: pollInterval,
		Metrics:      NewMetrics(),
	}
}

// Run proves successive chunks forever, starting at index 0, writing one
// proof file per chunk to OutputDir. It returns only on an unrecoverable
// error; a chunk the source doesn't yet have is treated as "not ready" and
// retried after PollInterval, exactly as the teacher's relayer loop retries
// a not-yet-published sync committee update.
func (s *Service) Run() error {
	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return fmt.Errorf("authdecode: creating output dir %s: %w", s.OutputDir, err)
	}

	runID := uuid.New()
	log.Printf("authdecode: starting proving service (run %s)\n", runID)

	var index uint64
	for {
		log.Printf("authdecode: fetching chunk %d\n", index)
		chunk, err := s.Source.Chunk(index)
		if err != nil {
			log.Printf("authdecode: chunk %d not ready: %v\n", index, err)
			time.Sleep(s.PollInterval)
			continue
		}
		s.Metrics.RecordChunkFetched()

		start := time.Now()
		proof, err := s.proveChunk(chunk)
		if err != nil {
			s.Metrics.RecordProofFailure()
			return fmt.Errorf("authdecode: proving chunk %d: %w", index, err)
		}
		s.Metrics.RecordProofSuccess(time.Since(start).Milliseconds())

		outputPath := filepath.Join(s.OutputDir, fmt.Sprintf("proof-chunk-%d.json", index))
		if err := writeProof(outputPath, chunk.Index, proof); err != nil {
			return fmt.Errorf("authdecode: writing proof for chunk %d: %w", index, err)
		}
		log.Printf("authdecode: proof for chunk %d written to %s\n", index, outputPath)

		index++
	}
}

// proveChunk converts one PlaintextChunk into a backend.ProofInput,
// committing to the plaintext and encoding sum along the way, then proves
// it.
func (s *Service) proveChunk(chunk *PlaintextChunk) (backend.Proof, error) {
	bits := unpackBits(chunk.Bits)

	deltas := make([]field.Element, len(chunk.Deltas))
	for i, d := range chunk.Deltas {
		fe, err := field.FromBytesBE(d)
		if err != nil {
			return nil, fmt.Errorf("decoding delta %d: %w", i, err)
		}
		deltas[i] = fe
	}
	zeroSum, err := field.FromBytesBE(chunk.ZeroSum)
	if err != nil {
		return nil, fmt.Errorf("decoding zero_sum: %w", err)
	}

	plaintextHash, plaintextSalt, err := s.Prover.CommitPlaintext(bits)
	if err != nil {
		return nil, fmt.Errorf("committing plaintext: %w", err)
	}

	encodingSum := field.Zero()
	for i, bit := range bits {
		if bit {
			encodingSum = encodingSum.Add(deltas[i])
		}
	}
	encodingSum = encodingSum.Add(zeroSum)

	encodingSumHash, encodingSumSalt, err := s.Prover.CommitEncodingSum(encodingSum)
	if err != nil {
		return nil, fmt.Errorf("committing encoding sum: %w", err)
	}

	input := backend.ProofInput{
		Plaintext:       bits,
		PlaintextSalt:   plaintextSalt,
		EncodingSumSalt: encodingSumSalt,
		Deltas:          deltas,
		PlaintextHash:   plaintextHash,
		EncodingSumHash: encodingSumHash,
		ZeroSum:         zeroSum,
	}

	proofs, err := s.Prover.Prove([]backend.ProofInput{input})
	if err != nil {
		return nil, err
	}
	return proofs[0], nil
}

// unpackBits expands a packed byte slice into its individual bits,
// most-significant bit first, the same ordering commitment.CommitmentData
// expects.
func unpackBits(packed []byte) []bool {
	bits := make([]bool, 0, len(packed)*8)
	for _, b := range packed {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1 == 1)
		}
	}
	return bits
}

// proofFile is the on-disk JSON shape one written proof takes.
type proofFile struct {
	ChunkIndex uint64 `json:"chunk_index"`
	Proof      string `json:"proof"`
}

func writeProof(path string, chunkIndex uint64, proof backend.Proof) error {
	out := proofFile{ChunkIndex: chunkIndex, Proof: fmt.Sprintf("0x%x", []byte(proof))}
	blob, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0644)
}
