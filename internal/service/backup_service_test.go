package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"playtracker/internal/models"
	"playtracker/internal/store"
)

func seededStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	d := models.NewDataset()
	d.Children = []models.Child{{ID: 1, Name: "Ana", DisplayName: "Ana", Avatar: "A"}}
	d.Games = []models.Game{{ID: 1, Name: "bici"}}
	d.Sessions = []models.Session{{ID: 1, ChildID: 1, GameID: 1, Start: 1000, Duration: 10}}
	d.NextChildID, d.NextGameID, d.NextSessionID = 2, 2, 2
	return store.NewMemoryStoreWith(d)
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewBackupService(seededStore(t), "memory")

	var buf bytes.Buffer
	if err := src.ExportToWriter(ctx, &buf); err != nil {
		t.Fatalf("ExportToWriter() error = %v", err)
	}

	var backup BackupData
	if err := json.Unmarshal(buf.Bytes(), &backup); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if backup.Version != BackupVersion || backup.Source != "memory" {
		t.Errorf("unexpected header %+v", backup)
	}

	dst := store.NewMemoryStore()
	if err := NewBackupService(dst, "memory").ImportFromReader(ctx, &buf); err != nil {
		t.Fatalf("ImportFromReader() error = %v", err)
	}

	d, _ := dst.Load(ctx)
	if len(d.Children) != 1 || len(d.Games) != 1 || len(d.Sessions) != 1 || d.NextSessionID != 2 {
		t.Errorf("imported dataset = %+v", d)
	}
}

func TestBackupImportBareDataset(t *testing.T) {
	ctx := context.Background()
	doc := `{"children":[{"id":4,"name":"Luz","displayName":"Luz","avatar":"L","createdAt":"2026-01-01T00:00:00Z"}],"games":[],"sessions":[]}`

	dst := store.NewMemoryStore()
	if err := NewBackupService(dst, "memory").ImportFromReader(ctx, strings.NewReader(doc)); err != nil {
		t.Fatalf("ImportFromReader() error = %v", err)
	}

	d, _ := dst.Load(ctx)
	if len(d.Children) != 1 || d.Children[0].Name != "Luz" {
		t.Errorf("children = %+v", d.Children)
	}
	if d.NextChildID != 5 {
		t.Errorf("NextChildID = %d, want 5 after normalizing", d.NextChildID)
	}
}

func TestBackupFileAndMigrate(t *testing.T) {
	ctx := context.Background()
	src := NewBackupService(seededStore(t), "memory")

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := src.Export(ctx, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	fileStore, err := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := NewBackupService(fileStore, "file").Import(ctx, path); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	badgerStore, err := store.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory() error = %v", err)
	}
	defer badgerStore.Close()

	if err := NewBackupService(fileStore, "file").MigrateTo(ctx, badgerStore); err != nil {
		t.Fatalf("MigrateTo() error = %v", err)
	}

	d, _ := badgerStore.Load(ctx)
	if len(d.Sessions) != 1 || d.Games[0].Name != "bici" {
		t.Errorf("migrated dataset = %+v", d)
	}
}

// failingCloser accepts writes but fails on Close, like a full disk
// reporting a deferred write error
type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error {
	return errors.New("no space left on device")
}

func TestExportReportsCloseError(t *testing.T) {
	svc := NewBackupService(seededStore(t), "memory")
	out := &failingCloser{}
	svc.create = func(string) (io.WriteCloser, error) { return out, nil }

	err := svc.Export(context.Background(), "backup.json")
	if err == nil {
		t.Fatal("Export() should fail when the file cannot be closed")
	}
	if !strings.Contains(err.Error(), "no space left") {
		t.Errorf("error = %v, want the close error", err)
	}
	if out.Len() == 0 {
		t.Error("backup should have been written before Close")
	}
}
