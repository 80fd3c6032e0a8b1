package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "data.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	assertStoreRoundTrip(t, s)
}

func TestFileStoreDocumentLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, _ := NewFileStore(path)

	if err := s.Save(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("document is not a JSON object: %v", err)
	}
	for _, key := range []string{"children", "games", "sessions", "nextChildId", "nextGameId", "nextSessionId"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	os.WriteFile(path, []byte("{not json"), 0o644)

	s, _ := NewFileStore(path)
	if _, err := s.Load(context.Background()); err == nil {
		t.Error("expected decode error for a corrupt document")
	}
}
