package repository

import (
	"context"
	"fmt"
	"time"

	"playtracker/internal/database"
	"playtracker/internal/models"
)

// ChildRepository handles database operations for children
type ChildRepository struct {
	db database.DBTX
}

// NewChildRepository creates a new child repository
func NewChildRepository(db database.DBTX) *ChildRepository {
	return &ChildRepository{db: db}
}

// ListChildren retrieves every child ordered by id. Derived display fields
// are recomputed from the stored name and nickname.
func (r *ChildRepository) ListChildren(ctx context.Context) ([]models.Child, error) {
	query := `
		SELECT id, name, nickname, father_name, mother_name, created_at
		FROM children
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	children := []models.Child{}
	for rows.Next() {
		var (
			c         models.Child
			in        models.ChildInput
			createdAt int64
		)
		if err := rows.Scan(
			&c.ID,
			&in.Name,
			&in.Nickname,
			&in.FatherName,
			&in.MotherName,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		c.Apply(in)
		c.CreatedAt = time.UnixMilli(createdAt).UTC()
		children = append(children, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate children: %w", err)
	}

	return children, nil
}

// InsertChild writes a child row with its existing id
func (r *ChildRepository) InsertChild(ctx context.Context, c models.Child) error {
	query := `
		INSERT INTO children (id, name, nickname, father_name, mother_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Nickname, c.FatherName, c.MotherName, c.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert child %d: %w", c.ID, err)
	}
	return nil
}

// DeleteAllChildren removes every child row
func (r *ChildRepository) DeleteAllChildren(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM children"); err != nil {
		return fmt.Errorf("failed to clear children: %w", err)
	}
	return nil
}
