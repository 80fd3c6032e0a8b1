package repository

import (
	"context"
	"fmt"

	"playtracker/internal/database"
	"playtracker/internal/models"
)

// GameRepository handles database operations for games
type GameRepository struct {
	db database.DBTX
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.DBTX) *GameRepository {
	return &GameRepository{db: db}
}

// ListGames retrieves every game ordered by id
func (r *GameRepository) ListGames(ctx context.Context) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM games ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// InsertGame writes a game row with its existing id
func (r *GameRepository) InsertGame(ctx context.Context, g models.Game) error {
	if _, err := r.db.ExecContext(ctx, "INSERT INTO games (id, name) VALUES (?, ?)", g.ID, g.Name); err != nil {
		return fmt.Errorf("failed to insert game %d: %w", g.ID, err)
	}
	return nil
}

// DeleteAllGames removes every game row
func (r *GameRepository) DeleteAllGames(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM games"); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}
	return nil
}
