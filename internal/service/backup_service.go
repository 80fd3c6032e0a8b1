package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"playtracker/internal/models"
	"playtracker/internal/store"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the backup file layout
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Source     string          `json:"source"`
	Dataset    *models.Dataset `json:"dataset"`
}

// BackupService moves whole datasets between stores and backup files
type BackupService struct {
	store  store.Store
	source string
	create func(path string) (io.WriteCloser, error)
}

// NewBackupService creates a new backup service. source names the backend
// and is recorded in exports.
func NewBackupService(s store.Store, source string) *BackupService {
	return &BackupService{
		store:  s,
		source: source,
		create: func(path string) (io.WriteCloser, error) {
			return os.Create(path)
		},
	}
}

// Export writes a backup of the store to outputPath
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Println("Starting dataset export...")

	file, err := s.create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := s.ExportToWriter(ctx, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Printf("Dataset exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a backup of the store to w
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	d, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Source:     s.source,
		Dataset:    d,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d children, %d games, %d sessions",
		len(d.Children), len(d.Games), len(d.Sessions))
	return nil
}

// Import replaces the store's dataset with the backup at inputPath
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting dataset import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader replaces the store's dataset with the backup read from r.
// A bare dataset document, as written by the file store, is accepted too.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(raw, &backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Dataset == nil {
		d := models.NewDataset()
		if err := json.Unmarshal(raw, d); err != nil {
			return fmt.Errorf("failed to decode dataset: %w", err)
		}
		backup.Dataset = d
	} else {
		log.Printf("Backup version: %s, exported at: %s, source: %s",
			backup.Version, backup.ExportedAt, backup.Source)
	}

	backup.Dataset.Normalize()
	if err := s.store.Save(ctx, backup.Dataset); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	log.Printf("Imported: %d children, %d games, %d sessions",
		len(backup.Dataset.Children), len(backup.Dataset.Games), len(backup.Dataset.Sessions))
	return nil
}

// MigrateTo copies the store's dataset into dst, replacing whatever dst held
func (s *BackupService) MigrateTo(ctx context.Context, dst store.Store) error {
	d, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load source dataset: %w", err)
	}
	d.Normalize()

	if err := dst.Save(ctx, d); err != nil {
		return fmt.Errorf("failed to save destination dataset: %w", err)
	}

	log.Printf("Migrated: %d children, %d games, %d sessions",
		len(d.Children), len(d.Games), len(d.Sessions))
	return nil
}
