package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"playtracker/internal/models"
	"playtracker/internal/store"
)

// ExpiryAlert describes an active session that has used up its time
type ExpiryAlert struct {
	Session   models.Session
	ChildName string
	GameName  string
	Overdue   time.Duration
}

// Notifier delivers expiry alerts
type Notifier interface {
	NotifyExpired(ctx context.Context, alert ExpiryAlert) error
}

// LogNotifier writes alerts to the standard logger
type LogNotifier struct{}

func (LogNotifier) NotifyExpired(ctx context.Context, alert ExpiryAlert) error {
	log.Printf("Session %d expired: child=%q game=%q overdue=%s",
		alert.Session.ID, alert.ChildName, alert.GameName, alert.Overdue.Round(time.Second))
	return nil
}

// AlertService periodically looks for active sessions past their duration
// and notifies once per session and duration, so extending an alerted
// session re-arms it. It never ends a session.
type AlertService struct {
	handle   *store.Handle
	notifier Notifier
	now      func() time.Time

	mu sync.Mutex
	// session id -> duration that was alerted
	notified map[int64]float64
}

// NewAlertService creates a new alert service
func NewAlertService(handle *store.Handle, notifier Notifier) *AlertService {
	return &AlertService{
		handle:   handle,
		notifier: notifier,
		now:      time.Now,
		notified: make(map[int64]float64),
	}
}

// CheckExpired notifies about newly expired sessions and returns how many
// alerts were sent
func (s *AlertService) CheckExpired(ctx context.Context) (int, error) {
	now := s.now()
	var alerts []ExpiryAlert
	active := make(map[int64]bool)

	err := s.handle.View(ctx, func(d *models.Dataset) error {
		for _, sess := range d.Sessions {
			if !sess.IsActive() {
				continue
			}
			active[sess.ID] = true
			if !sess.IsExpired(now) {
				continue
			}

			alert := ExpiryAlert{
				Session: sess,
				Overdue: time.Duration(-sess.Remaining(now)) * time.Millisecond,
			}
			if idx := d.FindChild(sess.ChildID); idx >= 0 {
				alert.ChildName = d.Children[idx].DisplayName
			}
			if idx := d.FindGame(sess.GameID); idx >= 0 {
				alert.GameName = d.Games[idx].Name
			}
			alerts = append(alerts, alert)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Forget sessions that ended or were deleted
	for id := range s.notified {
		if !active[id] {
			delete(s.notified, id)
		}
	}

	sent := 0
	for _, alert := range alerts {
		if alerted, ok := s.notified[alert.Session.ID]; ok && alerted == alert.Session.Duration {
			continue
		}
		if err := s.notifier.NotifyExpired(ctx, alert); err != nil {
			log.Printf("Failed to send expiry alert for session %d: %v", alert.Session.ID, err)
			continue
		}
		s.notified[alert.Session.ID] = alert.Session.Duration
		sent++
	}
	return sent, nil
}

// Run checks for expired sessions every interval until ctx is cancelled
func (s *AlertService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CheckExpired(ctx); err != nil {
				log.Printf("Expiry check failed: %v", err)
			}
		}
	}
}
