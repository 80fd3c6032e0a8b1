package store

import (
	"context"
	"fmt"

	"playtracker/internal/database"
	"playtracker/internal/models"
	"playtracker/internal/repository"
)

// SQLStore maps the dataset onto the children, games, sessions and counters
// tables of a SQLite, PostgreSQL or MySQL database
type SQLStore struct {
	db *database.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore runs pending migrations and returns a store over db
func NewSQLStore(ctx context.Context, db *database.DB) (*SQLStore, error) {
	if err := db.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Load(ctx context.Context) (*models.Dataset, error) {
	d := models.NewDataset()

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		var err error
		if d.Children, err = repository.NewChildRepository(tx).ListChildren(ctx); err != nil {
			return err
		}
		if d.Games, err = repository.NewGameRepository(tx).ListGames(ctx); err != nil {
			return err
		}
		if d.Sessions, err = repository.NewSessionRepository(tx).ListSessions(ctx); err != nil {
			return err
		}

		counters, err := repository.NewCounterRepository(tx).GetCounters(ctx)
		if err != nil {
			return err
		}
		if v, ok := counters[repository.CounterChild]; ok {
			d.NextChildID = v
		}
		if v, ok := counters[repository.CounterGame]; ok {
			d.NextGameID = v
		}
		if v, ok := counters[repository.CounterSession]; ok {
			d.NextSessionID = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Save replaces every row inside one transaction, so a failure leaves the
// previous dataset untouched
func (s *SQLStore) Save(ctx context.Context, d *models.Dataset) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		children := repository.NewChildRepository(tx)
		games := repository.NewGameRepository(tx)
		sessions := repository.NewSessionRepository(tx)
		counters := repository.NewCounterRepository(tx)

		if err := sessions.DeleteAllSessions(ctx); err != nil {
			return err
		}
		if err := games.DeleteAllGames(ctx); err != nil {
			return err
		}
		if err := children.DeleteAllChildren(ctx); err != nil {
			return err
		}

		for _, c := range d.Children {
			if err := children.InsertChild(ctx, c); err != nil {
				return err
			}
		}
		for _, g := range d.Games {
			if err := games.InsertGame(ctx, g); err != nil {
				return err
			}
		}
		for _, sess := range d.Sessions {
			if err := sessions.InsertSession(ctx, sess); err != nil {
				return err
			}
		}

		if err := counters.SetCounter(ctx, repository.CounterChild, d.NextChildID); err != nil {
			return err
		}
		if err := counters.SetCounter(ctx, repository.CounterGame, d.NextGameID); err != nil {
			return err
		}
		return counters.SetCounter(ctx, repository.CounterSession, d.NextSessionID)
	})
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
