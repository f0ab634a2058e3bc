// Package encoding implements the plaintext-bit <-> encoding bookkeeping
// described in spec §3 and supplemented from
// original_source/authdecode/src/prover/commitment.rs: one-time-pad labels
// per bit, their conversion state, and the per-bit delta / zero-sum values
// that link the circuit's dot product to the committed encoding sum.
package encoding

import (
	"fmt"

	"github.com/kysee/authdecode/field"
)

// BitID identifies a plaintext bit's externally-assigned encoding id (e.g.
// its offset in a TLS record). AuthDecode itself is agnostic to what an id
// means; it only needs ids to be stable and unique per chunk.
type BitID uint64

// State is a phantom type parameter distinguishing encodings that have just
// arrived from the one-time-pad protocol (Original) from encodings that
// have been uncorrelated and truncated in preparation for summing and
// committing (Converted).
type State interface {
	original | converted
}

type original struct{}
type converted struct{}

// Original and Converted name the two encoding lifecycle states.
type (
	Original  = original
	Converted = converted
)

// Encoding is one bit's active one-time-pad label: the "0-label" if the bit
// is 0, the "1-label" if the bit is 1, plus the bit value itself so a delta
// can be derived once the alternate label is known.
type Encoding struct {
	Bit        bool
	Active     field.Element
	ZeroLabel  field.Element
	OneLabel   field.Element
}

// NewEncoding builds an Encoding from the two candidate labels and the true
// bit value.
func NewEncoding(zeroLabel, oneLabel field.Element, bit bool) Encoding {
	active := zeroLabel
	if bit {
		active = oneLabel
	}
	return Encoding{Bit: bit, Active: active, ZeroLabel: zeroLabel, OneLabel: oneLabel}
}

// Delta returns delta = active_encoding - zero_label, equivalently
// (one_label - zero_label) * bit, per spec §3.
func (e Encoding) Delta() field.Element {
	return e.Active.Sub(e.ZeroLabel)
}

// ActiveEncodings is a bit-id-ordered collection of Encodings in lifecycle
// state S (Original or Converted).
type ActiveEncodings[S State] struct {
	ids      []BitID
	encodings []Encoding
}

// NewActiveEncodings builds an ActiveEncodings in the Original state from
// parallel plaintext bits, their two candidate labels, and bit ids.
//
// Panics if plaintext, zeroLabels, oneLabels and ids are not all of the same
// length, matching the panic-on-caller-bug contract of
// original_source/authdecode/src/prover/commitment.rs's CommitmentData::new.
func NewActiveEncodings(plaintext []bool, zeroLabels, oneLabels []field.Element, ids []BitID) ActiveEncodings[Original] {
	if len(plaintext) != len(zeroLabels) || len(plaintext) != len(oneLabels) || len(plaintext) != len(ids) {
		panic("encoding: plaintext, labels and ids must all be the same length")
	}
	encodings := make([]Encoding, len(plaintext))
	for i, bit := range plaintext {
		encodings[i] = NewEncoding(zeroLabels[i], oneLabels[i], bit)
	}
	return ActiveEncodings[Original]{ids: append([]BitID(nil), ids...), encodings: encodings}
}

// Len returns the number of bits held.
func (a ActiveEncodings[S]) Len() int {
	return len(a.encodings)
}

// IDs returns the bit ids, in order.
func (a ActiveEncodings[S]) IDs() []BitID {
	return a.ids
}

// Bits returns the plaintext bit values, in order.
func (a ActiveEncodings[S]) Bits() []bool {
	bits := make([]bool, len(a.encodings))
	for i, e := range a.encodings {
		bits[i] = e.Bit
	}
	return bits
}

// Deltas returns the per-bit delta values, in order.
func (a ActiveEncodings[S]) Deltas() []field.Element {
	deltas := make([]field.Element, len(a.encodings))
	for i, e := range a.encodings {
		deltas[i] = e.Delta()
	}
	return deltas
}

// ZeroSum returns Sigma zero_labels over this collection.
func (a ActiveEncodings[S]) ZeroSum() field.Element {
	sum := field.Zero()
	for _, e := range a.encodings {
		sum = sum.Add(e.ZeroLabel)
	}
	return sum
}

// Convert truncates and decorrelates each Original encoding, producing the
// Converted view the commitment layer actually sums and commits to. The
// truncation/decorrelation transform itself is an external-protocol detail
// (a one-time-pad derivation outside this module's scope); here it is
// represented as the identity on Active/ZeroLabel/OneLabel, which is
// sufficient for the dot-product/hash relation this package and the circuit
// package jointly prove — only the lifecycle *type* changes.
func Convert(a ActiveEncodings[Original]) ActiveEncodings[Converted] {
	return ActiveEncodings[Converted]{
		ids:       append([]BitID(nil), a.ids...),
		encodings: append([]Encoding(nil), a.encodings...),
	}
}

// ComputeSum returns Sigma active_encodings over this (Converted)
// collection — the value the prover commits to via the encoding-sum hash.
func ComputeSum(a ActiveEncodings[Converted]) field.Element {
	sum := field.Zero()
	for _, e := range a.encodings {
		sum = sum.Add(e.Active)
	}
	return sum
}

// Chunk splits a into fixed-size chunks of chunkSize bits, right-padding the
// final chunk with zero-value placeholder bits/encodings so every chunk
// iterated below is exactly chunkSize long, per spec §4.3's chunk
// iteration contract.
func Chunk[S State](a ActiveEncodings[S], chunkSize int) ([]ActiveEncodings[S], error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("encoding: chunk size must be positive")
	}
	var chunks []ActiveEncodings[S]
	for offset := 0; offset < len(a.encodings); offset += chunkSize {
		end := offset + chunkSize
		if end > len(a.encodings) {
			end = len(a.encodings)
		}
		ids := append([]BitID(nil), a.ids[offset:end]...)
		encs := append([]Encoding(nil), a.encodings[offset:end]...)
		for len(encs) < chunkSize {
			ids = append(ids, BitID(0))
			encs = append(encs, Encoding{})
		}
		chunks = append(chunks, ActiveEncodings[S]{ids: ids, encodings: encs})
	}
	if len(chunks) == 0 {
		chunks = append(chunks, ActiveEncodings[S]{
			ids:       make([]BitID, chunkSize),
			encodings: make([]Encoding, chunkSize),
		})
	}
	return chunks, nil
}
