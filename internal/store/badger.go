package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"playtracker/internal/models"
)

var datasetKey = []byte("playtracker:dataset")

// BadgerStore keeps the dataset JSON under a single key in an embedded Badger DB
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database in dir
func OpenBadger(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir).WithLogger(nil))
}

// OpenBadgerInMemory opens a Badger database that never touches disk
func OpenBadgerInMemory() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(ctx context.Context) (*models.Dataset, error) {
	d := models.NewDataset()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(datasetKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, d)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset from badger: %w", err)
	}
	return d, nil
}

func (s *BadgerStore) Save(ctx context.Context, d *models.Dataset) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(datasetKey, data)
	})
	if err != nil {
		return fmt.Errorf("failed to write dataset to badger: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
