package service

import (
	"context"
	"strings"

	"playtracker/internal/models"
	"playtracker/internal/store"
	"playtracker/internal/validation"
)

// GameService handles game business logic
type GameService struct {
	handle *store.Handle
	limits validation.Limits
}

// NewGameService creates a new game service
func NewGameService(handle *store.Handle, limits validation.Limits) *GameService {
	return &GameService{handle: handle, limits: limits}
}

// ListGames returns every game
func (s *GameService) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := s.handle.View(ctx, func(d *models.Dataset) error {
		games = append([]models.Game{}, d.Games...)
		return nil
	})
	return games, err
}

// CreateGame stores a new game. Names are not required to be unique.
func (s *GameService) CreateGame(ctx context.Context, in models.GameInput) (*models.Game, error) {
	if err := s.limits.ValidateGame(in); err != nil {
		return nil, err
	}

	var game models.Game
	err := s.handle.Update(ctx, func(d *models.Dataset) error {
		game = models.Game{ID: d.NextGameID, Name: strings.TrimSpace(in.Name)}
		d.NextGameID++
		d.Games = append(d.Games, game)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// DeleteGame removes a game. Sessions that reference it are kept.
func (s *GameService) DeleteGame(ctx context.Context, id int64) error {
	return s.handle.Update(ctx, func(d *models.Dataset) error {
		idx := d.FindGame(id)
		if idx < 0 {
			return ErrGameNotFound
		}
		d.Games = append(d.Games[:idx], d.Games[idx+1:]...)
		return nil
	})
}
