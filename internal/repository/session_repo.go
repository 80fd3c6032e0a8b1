package repository

import (
	"context"
	"database/sql"
	"fmt"

	"playtracker/internal/database"
	"playtracker/internal/models"
)

// SessionRepository handles database operations for play sessions
type SessionRepository struct {
	db database.DBTX
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// ListSessions retrieves every session ordered by id
func (r *SessionRepository) ListSessions(ctx context.Context) ([]models.Session, error) {
	query := `
		SELECT id, child_id, game_id, started_at, ended_at, duration_minutes
		FROM sessions
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var (
			s     models.Session
			ended sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.ChildID, &s.GameID, &s.Start, &ended, &s.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if ended.Valid {
			end := ended.Int64
			s.End = &end
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// InsertSession writes a session row with its existing id
func (r *SessionRepository) InsertSession(ctx context.Context, s models.Session) error {
	query := `
		INSERT INTO sessions (id, child_id, game_id, started_at, ended_at, duration_minutes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	var ended sql.NullInt64
	if s.End != nil {
		ended = sql.NullInt64{Int64: *s.End, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, s.ID, s.ChildID, s.GameID, s.Start, ended, s.Duration)
	if err != nil {
		return fmt.Errorf("failed to insert session %d: %w", s.ID, err)
	}
	return nil
}

// DeleteAllSessions removes every session row
func (r *SessionRepository) DeleteAllSessions(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}
