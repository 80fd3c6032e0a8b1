package store

import (
	"context"
	"sync"

	"playtracker/internal/models"
)

// MemoryStore keeps the dataset in process memory. Every Load and Save
// copies, so callers never share state with the store.
type MemoryStore struct {
	mu sync.Mutex
	d  *models.Dataset
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{d: models.NewDataset()}
}

// NewMemoryStoreWith creates an in-memory store seeded with d
func NewMemoryStoreWith(d *models.Dataset) *MemoryStore {
	return &MemoryStore{d: d.Clone()}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, d *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d = d.Clone()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
