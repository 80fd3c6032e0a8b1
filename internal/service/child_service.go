package service

import (
	"context"
	"time"

	"playtracker/internal/lock"
	"playtracker/internal/models"
	"playtracker/internal/store"
	"playtracker/internal/validation"
)

// ChildService handles child profile business logic
type ChildService struct {
	handle *store.Handle
	locks  *lock.Manager
	limits validation.Limits
	now    func() time.Time
}

// NewChildService creates a new child service
func NewChildService(handle *store.Handle, locks *lock.Manager, limits validation.Limits) *ChildService {
	return &ChildService{
		handle: handle,
		locks:  locks,
		limits: limits,
		now:    time.Now,
	}
}

// ListChildren returns every child with statistics computed from ended sessions
func (s *ChildService) ListChildren(ctx context.Context) ([]models.Child, error) {
	var children []models.Child
	err := s.handle.View(ctx, func(d *models.Dataset) error {
		children = make([]models.Child, 0, len(d.Children))
		for _, c := range d.Children {
			children = append(children, d.WithStats(c))
		}
		return nil
	})
	return children, err
}

// GetChild returns one child with statistics
func (s *ChildService) GetChild(ctx context.Context, id int64) (*models.Child, error) {
	var child models.Child
	err := s.handle.View(ctx, func(d *models.Dataset) error {
		idx := d.FindChild(id)
		if idx < 0 {
			return ErrChildNotFound
		}
		child = d.WithStats(d.Children[idx])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &child, nil
}

// CreateChild validates the input, rejects exact duplicates and stores a new
// child. The returned suggestion is non-empty when another child shares the
// display name but has different parents.
func (s *ChildService) CreateChild(ctx context.Context, in models.ChildInput) (*models.Child, string, error) {
	if err := s.limits.ValidateChild(in); err != nil {
		return nil, "", err
	}

	var (
		child      models.Child
		suggestion string
	)
	err := s.handle.Update(ctx, func(d *models.Dataset) error {
		result := DetectDuplicate(in, d.Children, 0)
		if result.IsDuplicate {
			return &DuplicateError{Message: result.Message}
		}
		suggestion = result.Suggestion

		child = models.Child{
			ID:        d.NextChildID,
			CreatedAt: time.UnixMilli(s.now().UnixMilli()).UTC(),
		}
		child.Apply(in)
		d.NextChildID++
		d.Children = append(d.Children, child)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return &child, suggestion, nil
}

// UpdateChild re-validates and re-checks duplicates, excluding the child
// being edited. The id and creation time never change.
func (s *ChildService) UpdateChild(ctx context.Context, id int64, in models.ChildInput) (*models.Child, string, error) {
	if err := s.limits.ValidateChild(in); err != nil {
		return nil, "", err
	}

	var (
		child      models.Child
		suggestion string
	)
	err := withLock(s.locks, lock.ChildKey(id), func() error {
		return s.handle.Update(ctx, func(d *models.Dataset) error {
			idx := d.FindChild(id)
			if idx < 0 {
				return ErrChildNotFound
			}

			result := DetectDuplicate(in, d.Children, id)
			if result.IsDuplicate {
				return &DuplicateError{Message: result.Message}
			}
			suggestion = result.Suggestion

			d.Children[idx].Apply(in)
			child = d.WithStats(d.Children[idx])
			return nil
		})
	})
	if err != nil {
		return nil, "", err
	}
	return &child, suggestion, nil
}

// DeleteChild removes a child. Its sessions stay behind as history.
func (s *ChildService) DeleteChild(ctx context.Context, id int64) error {
	return withLock(s.locks, lock.ChildKey(id), func() error {
		return s.handle.Update(ctx, func(d *models.Dataset) error {
			idx := d.FindChild(id)
			if idx < 0 {
				return ErrChildNotFound
			}
			d.Children = append(d.Children[:idx], d.Children[idx+1:]...)
			return nil
		})
	})
}
