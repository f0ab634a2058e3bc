// Package hexutil provides hex/base64 codecs for plaintext and proof blobs
// moving in and out of the prover/verifier JSON surfaces.
package hexutil

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// ToBytes decodes a string as hex, tolerating an optional "0x" prefix.
func ToBytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}

// Bytes is a byte slice that marshals to JSON as a "0x"-prefixed hex string
// and unmarshals from either hex or base64.
type Bytes []byte

func (b Bytes) String() string {
	return hex.EncodeToString(b)
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	s := "0x" + hex.EncodeToString(b)
	out := make([]byte, len(s)+2)
	out[0] = '"'
	copy(out[1:], s)
	out[len(out)-1] = '"'
	return out, nil
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("hexutil: invalid string literal: %s", data)
	}

	val := string(data[1 : len(data)-1])
	if isHex(val) {
		decoded, err := hex.DecodeString(strings.TrimPrefix(val, "0x"))
		if err != nil {
			return err
		}
		*b = decoded
		return nil
	}

	decoded, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

func isHex(s string) bool {
	v := strings.TrimPrefix(s, "0x")
	if len(v)%2 != 0 {
		return false
	}
	for _, c := range []byte(v) {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
