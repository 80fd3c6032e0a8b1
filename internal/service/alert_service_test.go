package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"playtracker/internal/models"
)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []ExpiryAlert
	fail   bool
}

func (n *recordingNotifier) NotifyExpired(ctx context.Context, alert ExpiryAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("delivery failed")
	}
	n.alerts = append(n.alerts, alert)
	return nil
}

func TestAlertServiceNotifiesOncePerSession(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	ana, bici := env.seed(t)

	notifier := &recordingNotifier{}
	alerts := NewAlertService(env.handle, notifier)
	alerts.now = env.clock.Now

	s, _ := env.sessions.StartSession(ctx, models.StartSessionInput{ChildID: ana.ID, GameID: bici.ID, Duration: 10})

	env.clock.Advance(5 * time.Minute)
	if n, _ := alerts.CheckExpired(ctx); n != 0 {
		t.Fatalf("no session has expired yet, sent %d alerts", n)
	}

	env.clock.Advance(7 * time.Minute)
	if n, _ := alerts.CheckExpired(ctx); n != 1 {
		t.Fatalf("expected 1 alert, sent %d", n)
	}
	if n, _ := alerts.CheckExpired(ctx); n != 0 {
		t.Errorf("alert repeated for the same session")
	}

	got := notifier.alerts[0]
	if got.Session.ID != s.ID || got.ChildName != "Ana" || got.GameName != "bici" {
		t.Errorf("unexpected alert %+v", got)
	}
	if got.Overdue != 2*time.Minute {
		t.Errorf("Overdue = %v, want 2m", got.Overdue)
	}

	// alerting never ends the session
	active, _ := env.sessions.ListActive(ctx)
	if len(active) != 1 {
		t.Error("alert service must not end sessions")
	}
}

func TestAlertServiceForgetsEndedSessions(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	ana, bici := env.seed(t)

	notifier := &recordingNotifier{}
	alerts := NewAlertService(env.handle, notifier)
	alerts.now = env.clock.Now

	s, _ := env.sessions.StartSession(ctx, models.StartSessionInput{ChildID: ana.ID, GameID: bici.ID, Duration: 1})
	env.clock.Advance(2 * time.Minute)
	alerts.CheckExpired(ctx)

	env.sessions.EndSession(ctx, s.ID)
	alerts.CheckExpired(ctx)

	alerts.mu.Lock()
	remembered := len(alerts.notified)
	alerts.mu.Unlock()
	if remembered != 0 {
		t.Errorf("ended session still tracked: %d entries", remembered)
	}
}

func TestAlertServiceRetriesFailedDelivery(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	ana, bici := env.seed(t)

	notifier := &recordingNotifier{fail: true}
	alerts := NewAlertService(env.handle, notifier)
	alerts.now = env.clock.Now

	env.sessions.StartSession(ctx, models.StartSessionInput{ChildID: ana.ID, GameID: bici.ID, Duration: 1})
	env.clock.Advance(2 * time.Minute)

	if n, _ := alerts.CheckExpired(ctx); n != 0 {
		t.Fatalf("failed delivery counted as sent")
	}

	notifier.fail = false
	if n, _ := alerts.CheckExpired(ctx); n != 1 {
		t.Errorf("failed alert should be retried on the next check, sent %d", n)
	}
}

func TestAlertServiceRearmsAfterExtend(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	ana, bici := env.seed(t)

	notifier := &recordingNotifier{}
	alerts := NewAlertService(env.handle, notifier)
	alerts.now = env.clock.Now

	s, err := env.sessions.StartSession(ctx, models.StartSessionInput{ChildID: ana.ID, GameID: bici.ID, Duration: 10})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	env.clock.Advance(11 * time.Minute)
	if n, _ := alerts.CheckExpired(ctx); n != 1 {
		t.Fatalf("first expiry alerts = %d, want 1", n)
	}

	if _, err := env.sessions.ExtendSession(ctx, models.ExtendSessionInput{SessionID: s.ID, AdditionalTime: 5}); err != nil {
		t.Fatalf("ExtendSession() error = %v", err)
	}
	env.clock.Advance(time.Minute)
	if n, _ := alerts.CheckExpired(ctx); n != 0 {
		t.Errorf("alerts while extended = %d, want 0", n)
	}

	env.clock.Advance(10 * time.Minute)
	if n, _ := alerts.CheckExpired(ctx); n != 1 {
		t.Errorf("second expiry alerts = %d, want 1", n)
	}
	if n, _ := alerts.CheckExpired(ctx); n != 0 {
		t.Errorf("repeat scan alerts = %d, want 0", n)
	}
	if len(notifier.alerts) != 2 || notifier.alerts[1].Session.Duration != 15 {
		t.Errorf("alerts = %+v, want two with the second at duration 15", notifier.alerts)
	}
}
