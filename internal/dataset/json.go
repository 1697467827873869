package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hyperjump/sijil/internal/models"
)

// JSONFileSource reads a JSON array of person records from a local file.
type JSONFileSource struct {
	Path string
}

// Name returns the file path.
func (s *JSONFileSource) Name() string { return s.Path }

// Load reads and decodes the file.
func (s *JSONFileSource) Load(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// HTTPSource fetches a JSON array of person records from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns a source for url. A nil client gets a 30s timeout client.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{URL: url, Client: client}
}

// Name returns the URL.
func (s *HTTPSource) Name() string { return s.URL }

// Load fetches and decodes the dataset. Any status other than 200 is an error.
func (s *HTTPSource) Load(ctx context.Context) (*Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	return DecodeJSON(resp.Body)
}

// DecodeJSON decodes a JSON array of person records. The array itself must be valid;
// elements that do not decode as a person are counted in Skipped and left out.
func DecodeJSON(r io.Reader) (*Batch, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	batch := &Batch{Persons: make([]models.Person, 0, len(raw))}
	for _, msg := range raw {
		var p models.Person
		if err := json.Unmarshal(msg, &p); err != nil {
			batch.Skipped++
			continue
		}
		batch.Persons = append(batch.Persons, p)
	}
	return batch, nil
}
