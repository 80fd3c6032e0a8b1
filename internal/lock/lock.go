// Package lock provides a best-effort, non-blocking write lock keyed by
// resource name.
//
// Leases live in process memory only. Two server instances never observe
// each other's locks, so this reduces write collisions on a single process
// but does not make writes exclusive across a deployment.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultTTL is the forced-release window for a lease that is never unlocked
const DefaultTTL = 30 * time.Second

type lease struct {
	owner     string
	expiresAt time.Time
}

// Manager hands out self-expiring leases on resource keys
type Manager struct {
	leases *xsync.MapOf[string, lease]
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a lock manager. A non-positive ttl falls back to DefaultTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		leases: xsync.NewMapOf[string, lease](),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the default lease duration
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// ChildKey returns the lock key for a child record
func ChildKey(id int64) string {
	return fmt.Sprintf("child:%d", id)
}

// SessionKey returns the lock key for a session record
func SessionKey(id int64) string {
	return fmt.Sprintf("session:%d", id)
}

// TryLock attempts to take the lease on key without waiting. On success it
// returns the owner token needed to release it. A lease older than its ttl
// counts as released.
func (m *Manager) TryLock(key string, ttl time.Duration) (string, bool) {
	if ttl <= 0 {
		ttl = m.ttl
	}
	now := m.now()
	owner := uuid.NewString()
	acquired := false

	m.leases.Compute(key, func(old lease, loaded bool) (lease, bool) {
		if loaded && now.Before(old.expiresAt) {
			return old, false
		}
		acquired = true
		return lease{owner: owner, expiresAt: now.Add(ttl)}, false
	})

	if !acquired {
		return "", false
	}
	return owner, true
}

// Unlock releases the lease on key if owner still holds it. It reports
// false when the lease already expired or was taken by someone else.
func (m *Manager) Unlock(key, owner string) bool {
	released := false
	m.leases.Compute(key, func(old lease, loaded bool) (lease, bool) {
		if !loaded {
			return old, true
		}
		if old.owner != owner {
			return old, false
		}
		released = true
		return old, true
	})
	return released
}

// IsLocked reports whether key currently has a live lease
func (m *Manager) IsLocked(key string) bool {
	l, ok := m.leases.Load(key)
	return ok && m.now().Before(l.expiresAt)
}

// Sweep removes expired leases and returns how many were dropped
func (m *Manager) Sweep() int {
	now := m.now()
	var expired []string
	m.leases.Range(func(key string, l lease) bool {
		if !now.Before(l.expiresAt) {
			expired = append(expired, key)
		}
		return true
	})

	removed := 0
	for _, key := range expired {
		m.leases.Compute(key, func(old lease, loaded bool) (lease, bool) {
			if loaded && !now.Before(old.expiresAt) {
				removed++
				return old, true
			}
			return old, !loaded
		})
	}
	return removed
}

// RunJanitor sweeps expired leases every interval until ctx is cancelled
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
