package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"playtracker/internal/models"
)

const blobRequestTimeout = 15 * time.Second

// BlobStore keeps the dataset in a remote JSON-blob service. The whole
// document is fetched with GET and replaced with PUT on the same URL.
type BlobStore struct {
	url       string
	apiKey    string
	keyHeader string
	client    *http.Client
}

var _ Store = (*BlobStore)(nil)

// NewBlobStore creates a store for the blob at url. When apiKey is set it is
// sent in keyHeader on every request.
func NewBlobStore(url, apiKey, keyHeader string) *BlobStore {
	if keyHeader == "" {
		keyHeader = "X-Master-Key"
	}
	return &BlobStore{
		url:       url,
		apiKey:    apiKey,
		keyHeader: keyHeader,
		client:    &http.Client{Timeout: blobRequestTimeout},
	}
}

func (s *BlobStore) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set(s.keyHeader, s.apiKey)
	}
	return req, nil
}

func (s *BlobStore) Load(ctx context.Context) (*models.Dataset, error) {
	req, err := s.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.NewDataset(), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blob service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return decodeBlob(body)
}

// decodeBlob accepts either the bare dataset or a service envelope that
// wraps it in a "record" field
func decodeBlob(body []byte) (*models.Dataset, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return models.NewDataset(), nil
	}

	var envelope struct {
		Record json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode blob: %w", err)
	}
	if len(envelope.Record) > 0 && !bytes.Equal(envelope.Record, []byte("null")) {
		body = envelope.Record
	}

	d := models.NewDataset()
	if err := json.Unmarshal(body, d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return d, nil
}

func (s *BlobStore) Save(ctx context.Context, d *models.Dataset) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPut, bytes.NewReader(data))
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload blob: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("blob service returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *BlobStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
