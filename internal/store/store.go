// Package store persists the whole dataset through interchangeable backends
// and serializes every read-modify-write cycle through a single Handle.
package store

import (
	"context"
	"fmt"
	"sync"

	"playtracker/internal/models"
)

// Store loads and saves the complete dataset
type Store interface {
	// Load returns a copy of the persisted dataset. A backend with nothing
	// stored yet returns an empty dataset with all counters at 1.
	Load(ctx context.Context) (*models.Dataset, error)

	// Save replaces the persisted dataset
	Save(ctx context.Context, d *models.Dataset) error

	Close() error
}

// Handle is the single access point to a Store. Updates are exclusive, so
// each one is a complete read-modify-write cycle that no other update in
// this process can interleave with.
type Handle struct {
	mu    sync.RWMutex
	store Store
}

// NewHandle wraps a store
func NewHandle(s Store) *Handle {
	return &Handle{store: s}
}

// View loads the dataset and passes it to fn. Changes made by fn are discarded.
func (h *Handle) View(ctx context.Context, fn func(d *models.Dataset) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	d, err := h.load(ctx)
	if err != nil {
		return err
	}
	return fn(d)
}

// Update loads the dataset, applies fn and saves the result. If fn returns
// an error nothing is written.
func (h *Handle) Update(ctx context.Context, fn func(d *models.Dataset) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	d, err := h.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		return err
	}
	if err := h.store.Save(ctx, d); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	return nil
}

// Close closes the underlying store
func (h *Handle) Close() error {
	return h.store.Close()
}

func (h *Handle) load(ctx context.Context) (*models.Dataset, error) {
	d, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	d.Normalize()
	return d, nil
}
