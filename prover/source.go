package prover

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/kysee/authdecode/internal/hexutil"
)

// PlaintextChunk is one unit of work the proving service pulls from a
// PlaintextSource: the plaintext bits themselves and the externally
// assigned encoding deltas/zero-sum needed to build a backend.ProofInput.
type PlaintextChunk struct {
	Index   uint64          `json:"index"`
	Bits    hexutil.Bytes   `json:"bits"`
	Deltas  []hexutil.Bytes `json:"deltas"`
	ZeroSum hexutil.Bytes   `json:"zero_sum"`
}

// PlaintextSource fetches the next plaintext chunk to prove, by index.
type PlaintextSource interface {
	Chunk(index uint64) (*PlaintextChunk, error)
}

// FileSource implements PlaintextSource by reading one JSON-encoded
// PlaintextChunk array from a local file.
type FileSource struct {
	FilePath string
}

// NewFileSource creates a FileSource reading from the given path.
func NewFileSource(filePath string) *FileSource {
	return &FileSource{FilePath: filePath}
}

// Chunk reads and parses the chunk file, returning the entry at index.
func (f *FileSource) Chunk(index uint64) (*PlaintextChunk, error) {
	data, err := os.ReadFile(f.FilePath)
	if err != nil {
		return nil, fmt.Errorf("authdecode: reading %s: %w", f.FilePath, err)
	}

	var chunks []PlaintextChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("authdecode: parsing %s: %w", f.FilePath, err)
	}
	if index >= uint64(len(chunks)) {
		return nil, fmt.Errorf("authdecode: chunk %d not present in %s", index, f.FilePath)
	}
	return &chunks[index], nil
}

// HTTPSource implements PlaintextSource by calling GET /chunks?index=N on
// BaseURL's scheme and host; any path in BaseURL is replaced by /chunks.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTPSource against the given base URL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		Client:  &http.Client{},
	}
}

// Chunk retrieves one plaintext chunk via HTTP GET.
func (h *HTTPSource) Chunk(index uint64) (*PlaintextChunk, error) {
	endpoint, err := url.Parse(h.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("authdecode: invalid base URL: %w", err)
	}
	endpoint.Path = "/chunks"
	query := endpoint.Query()
	query.Set("index", strconv.FormatUint(index, 10))
	endpoint.RawQuery = query.Encode()

	resp, err := h.Client.Get(endpoint.String())
	if err != nil {
		return nil, fmt.Errorf("authdecode: requesting chunk %d: %w", index, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("authdecode: reading response for chunk %d: %w", index, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authdecode: chunk %d request failed with status %d: %s", index, resp.StatusCode, string(body))
	}

	var chunk PlaintextChunk
	if err := json.Unmarshal(body, &chunk); err != nil {
		return nil, fmt.Errorf("authdecode: parsing chunk %d response: %w", index, err)
	}
	return &chunk, nil
}
