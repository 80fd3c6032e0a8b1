package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"playtracker/internal/lock"
	"playtracker/internal/models"
	"playtracker/internal/store"
	"playtracker/internal/validation"
)

// SessionService runs the play session lifecycle: start, extend and end
type SessionService struct {
	handle *store.Handle
	locks  *lock.Manager
	limits validation.Limits

	// maxMinutes caps the cumulative duration of one session, 0 means no cap
	maxMinutes float64
	now        func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(handle *store.Handle, locks *lock.Manager, limits validation.Limits, maxMinutes float64) *SessionService {
	return &SessionService{
		handle:     handle,
		locks:      locks,
		limits:     limits,
		maxMinutes: maxMinutes,
		now:        time.Now,
	}
}

func (s *SessionService) checkCap(duration float64) error {
	if s.maxMinutes > 0 && duration > s.maxMinutes {
		return validation.ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("total session duration cannot exceed %g minutes", s.maxMinutes),
		}
	}
	return nil
}

// StartSession starts a session for a child that has none active
func (s *SessionService) StartSession(ctx context.Context, in models.StartSessionInput) (*models.Session, error) {
	if err := s.limits.ValidateStartSession(in); err != nil {
		return nil, err
	}
	if err := s.checkCap(in.Duration); err != nil {
		return nil, err
	}

	var session models.Session
	err := withLock(s.locks, lock.ChildKey(in.ChildID), func() error {
		return s.handle.Update(ctx, func(d *models.Dataset) error {
			if d.FindChild(in.ChildID) < 0 {
				return ErrChildNotFound
			}
			if d.FindGame(in.GameID) < 0 {
				return ErrGameNotFound
			}
			if d.ActiveSessionFor(in.ChildID) >= 0 {
				return ErrActiveSession
			}

			session = models.Session{
				ID:       d.NextSessionID,
				ChildID:  in.ChildID,
				GameID:   in.GameID,
				Start:    s.now().UnixMilli(),
				Duration: in.Duration,
			}
			d.NextSessionID++
			d.Sessions = append(d.Sessions, session)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ExtendSession adds time to an active session
func (s *SessionService) ExtendSession(ctx context.Context, in models.ExtendSessionInput) (*models.Session, error) {
	if err := s.limits.ValidateExtendSession(in); err != nil {
		return nil, err
	}

	var session models.Session
	err := withLock(s.locks, lock.SessionKey(in.SessionID), func() error {
		return s.handle.Update(ctx, func(d *models.Dataset) error {
			idx := d.FindSession(in.SessionID)
			if idx < 0 || !d.Sessions[idx].IsActive() {
				return ErrSessionNotFound
			}

			extended := d.Sessions[idx].Duration + in.AdditionalTime
			if err := s.checkCap(extended); err != nil {
				return err
			}
			d.Sessions[idx].Duration = extended
			session = d.Sessions[idx]
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// EndSession stamps the end time on an active session. Ending twice fails
// with ErrSessionNotFound.
func (s *SessionService) EndSession(ctx context.Context, id int64) (*models.Session, error) {
	if err := validation.ValidateEndSession(models.EndSessionInput{SessionID: id}); err != nil {
		return nil, err
	}

	var session models.Session
	err := withLock(s.locks, lock.SessionKey(id), func() error {
		return s.handle.Update(ctx, func(d *models.Dataset) error {
			idx := d.FindSession(id)
			if idx < 0 || !d.Sessions[idx].IsActive() {
				return ErrSessionNotFound
			}

			end := s.now().UnixMilli()
			if end < d.Sessions[idx].Start {
				end = d.Sessions[idx].Start
			}
			d.Sessions[idx].End = &end
			session = d.Sessions[idx]
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session regardless of its state
func (s *SessionService) DeleteSession(ctx context.Context, id int64) error {
	return withLock(s.locks, lock.SessionKey(id), func() error {
		return s.handle.Update(ctx, func(d *models.Dataset) error {
			idx := d.FindSession(id)
			if idx < 0 {
				return ErrSessionNotFound
			}
			d.Sessions = append(d.Sessions[:idx], d.Sessions[idx+1:]...)
			return nil
		})
	})
}

// GetSession returns one session in any state
func (s *SessionService) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	var session models.Session
	err := s.handle.View(ctx, func(d *models.Dataset) error {
		idx := d.FindSession(id)
		if idx < 0 {
			return ErrSessionNotFound
		}
		session = d.Sessions[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListActive returns every session that has not ended
func (s *SessionService) ListActive(ctx context.Context) ([]models.Session, error) {
	active := []models.Session{}
	err := s.handle.View(ctx, func(d *models.Dataset) error {
		for _, sess := range d.Sessions {
			if sess.IsActive() {
				active = append(active, sess)
			}
		}
		return nil
	})
	return active, err
}

// ListHistory returns every session, most recently started first
func (s *SessionService) ListHistory(ctx context.Context) ([]models.Session, error) {
	var history []models.Session
	err := s.handle.View(ctx, func(d *models.Dataset) error {
		history = append([]models.Session{}, d.Sessions...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Start != history[j].Start {
			return history[i].Start > history[j].Start
		}
		return history[i].ID > history[j].ID
	})
	return history, nil
}

// ListActiveViews projects every active session with its remaining time at now
func (s *SessionService) ListActiveViews(ctx context.Context, now time.Time) ([]models.ActiveSessionView, error) {
	active, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.ActiveSessionView, 0, len(active))
	for i := range active {
		views = append(views, active[i].View(now))
	}
	return views, nil
}
