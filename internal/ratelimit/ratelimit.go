package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Limiter implements a fixed window token bucket per client
type Limiter struct {
	visitors *xsync.MapOf[string, *visitor]
	rate     int           // requests per window
	window   time.Duration // time window
	now      func() time.Time
}

type visitor struct {
	mu         sync.Mutex
	tokens     int
	lastRefill time.Time
}

// New creates a limiter allowing rate requests per window for each client
func New(rate int, window time.Duration) *Limiter {
	return &Limiter{
		visitors: xsync.NewMapOf[string, *visitor](),
		rate:     rate,
		window:   window,
		now:      time.Now,
	}
}

// Allow checks if a request from key should be allowed
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	v, _ := l.visitors.LoadOrCompute(key, func() *visitor {
		return &visitor{tokens: l.rate, lastRefill: now}
	})

	v.mu.Lock()
	defer v.mu.Unlock()

	if now.Sub(v.lastRefill) >= l.window {
		v.tokens = l.rate
		v.lastRefill = now
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

// Cleanup drops clients idle for more than two windows
func (l *Limiter) Cleanup() int {
	now := l.now()
	removed := 0
	l.visitors.Range(func(key string, v *visitor) bool {
		v.mu.Lock()
		idle := now.Sub(v.lastRefill) > l.window*2
		v.mu.Unlock()
		if idle {
			l.visitors.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is cancelled
func (l *Limiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// ClientIP extracts the client IP from the request
func ClientIP(r *http.Request) string {
	// first hop of X-Forwarded-For when behind a proxy
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
