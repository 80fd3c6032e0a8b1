package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeBlobServer keeps one document and enforces the API key header
type fakeBlobServer struct {
	mu      sync.Mutex
	doc     []byte
	header  string
	key     string
	wrapped bool
}

func (f *fakeBlobServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.key != "" && r.Header.Get(f.header) != f.key {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if f.doc == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if f.wrapped {
			w.Write([]byte(`{"record":`))
			w.Write(f.doc)
			w.Write([]byte(`,"metadata":{"private":true}}`))
			return
		}
		w.Write(f.doc)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.doc = body
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestBlobStore(t *testing.T) {
	fake := &fakeBlobServer{header: "X-Master-Key", key: "secret"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	assertStoreRoundTrip(t, NewBlobStore(srv.URL, "secret", ""))
}

func TestBlobStoreRecordEnvelope(t *testing.T) {
	fake := &fakeBlobServer{header: "X-Access-Key", key: "k", wrapped: true}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	assertStoreRoundTrip(t, NewBlobStore(srv.URL, "k", "X-Access-Key"))
}

func TestBlobStoreRejectedKey(t *testing.T) {
	fake := &fakeBlobServer{header: "X-Master-Key", key: "secret"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	s := NewBlobStore(srv.URL, "wrong", "")
	if _, err := s.Load(context.Background()); err == nil {
		t.Error("expected an error for a rejected API key")
	}
	if err := s.Save(context.Background(), sampleDataset()); err == nil {
		t.Error("expected Save to fail for a rejected API key")
	}
}
