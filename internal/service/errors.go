package service

import (
	"errors"

	"playtracker/internal/lock"
)

var (
	ErrChildNotFound   = errors.New("child not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrSessionNotFound = errors.New("session not found or already ended")
	ErrActiveSession   = errors.New("child already has an active session")
	ErrResourceBusy    = errors.New("resource is being modified, try again")
)

// DuplicateError rejects a child that exactly matches an existing one
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// withLock runs fn while holding the advisory lease on key. A held lease
// fails fast with ErrResourceBusy instead of waiting.
func withLock(locks *lock.Manager, key string, fn func() error) error {
	owner, ok := locks.TryLock(key, 0)
	if !ok {
		return ErrResourceBusy
	}
	defer locks.Unlock(key, owner)
	return fn()
}
