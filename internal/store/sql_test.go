package store

import (
	"context"
	"path/filepath"
	"testing"

	"playtracker/internal/config"
)

func TestSQLStoreSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping SQLite store test in short mode")
	}

	cfg := &config.Config{
		Store:        config.StoreSQLite,
		DatabasePath: filepath.Join(t.TempDir(), "playtracker.db"),
	}
	s, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if _, ok := s.(*SQLStore); !ok {
		t.Fatalf("Open() returned %T, want *SQLStore", s)
	}
	assertStoreRoundTrip(t, s)
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{name: "file", cfg: &config.Config{Store: config.StoreFile, DataFile: filepath.Join(dir, "d.json")}, want: "*store.FileStore"},
		{name: "memory", cfg: &config.Config{Store: config.StoreMemory}, want: "*store.MemoryStore"},
		{name: "badger", cfg: &config.Config{Store: config.StoreBadger, BadgerDir: filepath.Join(dir, "badger")}, want: "*store.BadgerStore"},
		{name: "blob", cfg: &config.Config{Store: config.StoreBlob, BlobURL: "http://127.0.0.1:1/blob"}, want: "*store.BlobStore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()

			if got := typeName(s); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := Open(context.Background(), &config.Config{Store: "floppy"}); err == nil {
		t.Error("expected an error for an unknown store")
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case *FileStore:
		return "*store.FileStore"
	case *MemoryStore:
		return "*store.MemoryStore"
	case *BadgerStore:
		return "*store.BadgerStore"
	case *BlobStore:
		return "*store.BlobStore"
	case *SQLStore:
		return "*store.SQLStore"
	}
	return "unknown"
}
