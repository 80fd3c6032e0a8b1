package store

import (
	"context"
	"testing"
)

func TestBadgerStore(t *testing.T) {
	s, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory() error = %v", err)
	}
	defer s.Close()

	assertStoreRoundTrip(t, s)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.Save(ctx, sampleDataset()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	d, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(d.Sessions) != 2 {
		t.Errorf("expected 2 sessions after reopen, got %d", len(d.Sessions))
	}
}
