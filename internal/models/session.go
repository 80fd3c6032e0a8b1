package models

import "time"

// Session is a timed play session. Start and End are unix milliseconds and
// Duration is in minutes. A session with a nil End is active.
type Session struct {
	ID       int64   `json:"id"`
	ChildID  int64   `json:"childId"`
	GameID   int64   `json:"gameId"`
	Start    int64   `json:"start"`
	End      *int64  `json:"end,omitempty"`
	Duration float64 `json:"duration"`
}

// StartSessionInput is the payload for starting a session
type StartSessionInput struct {
	ChildID  int64   `json:"childId"`
	GameID   int64   `json:"gameId"`
	Duration float64 `json:"duration"`
}

// ExtendSessionInput is the payload for extending an active session
type ExtendSessionInput struct {
	SessionID      int64   `json:"sessionId"`
	AdditionalTime float64 `json:"additionalTime"`
}

// EndSessionInput is the payload for ending a session by body
type EndSessionInput struct {
	SessionID int64 `json:"sessionId"`
}

// ActiveSessionView is the read-time projection of an active session
type ActiveSessionView struct {
	Session
	RemainingMs int64 `json:"remainingMs"`
	Expired     bool  `json:"expired"`
}

// IsActive reports whether the session has not been ended
func (s *Session) IsActive() bool {
	return s.End == nil
}

// Remaining returns duration*60000 - (now - start) in milliseconds.
// It goes negative once the allotted time has passed.
func (s *Session) Remaining(now time.Time) int64 {
	allotted := int64(s.Duration * float64(time.Minute/time.Millisecond))
	return allotted - (now.UnixMilli() - s.Start)
}

// IsExpired reports whether an active session has used up its time.
// Expiry never ends the session.
func (s *Session) IsExpired(now time.Time) bool {
	return s.IsActive() && s.Remaining(now) <= 0
}

// View builds the active-session projection at the given instant
func (s *Session) View(now time.Time) ActiveSessionView {
	return ActiveSessionView{
		Session:     *s,
		RemainingMs: s.Remaining(now),
		Expired:     s.IsExpired(now),
	}
}
