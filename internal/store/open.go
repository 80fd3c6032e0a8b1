package store

import (
	"context"
	"fmt"

	"playtracker/internal/config"
	"playtracker/internal/database"
)

// Open builds the store selected by cfg.Store
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return NewFileStore(cfg.DataFile)
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSQLite, config.StorePostgres, config.StoreMySQL:
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		s, err := NewSQLStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	case config.StoreBadger:
		return OpenBadger(cfg.BadgerDir)
	case config.StoreBlob:
		return NewBlobStore(cfg.BlobURL, cfg.BlobAPIKey, cfg.BlobKeyHeader), nil
	default:
		return nil, fmt.Errorf("unsupported store: %q", cfg.Store)
	}
}
