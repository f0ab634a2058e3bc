package prover

import (
	"sync/atomic"
	"time"
)

// Metrics provides simple atomic counters for monitoring the proving
// service's throughput and success rate.
type Metrics struct {
	ChunksFetched int64 `json:"chunks_fetched"`
	ProofsBuilt   int64 `json:"proofs_built"`
	ProofFailures int64 `json:"proof_failures"`

	TotalProveLatencyMs int64 `json:"total_prove_latency_ms"`

	StartTime time.Time `json:"start_time"`
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// RecordChunkFetched increments the fetched-chunk counter.
func (m *Metrics) RecordChunkFetched() {
	atomic.AddInt64(&m.ChunksFetched, 1)
}

// RecordProofSuccess records one successfully proved chunk and its latency.
func (m *Metrics) RecordProofSuccess(latencyMs int64) {
	atomic.AddInt64(&m.ProofsBuilt, 1)
	atomic.AddInt64(&m.TotalProveLatencyMs, latencyMs)
}

// RecordProofFailure increments the proof failure counter.
func (m *Metrics) RecordProofFailure() {
	atomic.AddInt64(&m.ProofFailures, 1)
}

// AverageProveLatencyMs returns the mean latency across every successfully
// proved chunk.
func (m *Metrics) AverageProveLatencyMs() float64 {
	built := atomic.LoadInt64(&m.ProofsBuilt)
	if built == 0 {
		return 0.0
	}
	total := atomic.LoadInt64(&m.TotalProveLatencyMs)
	return float64(total) / float64(built)
}
