package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"church-platform-backend/internal/features/event/models"
	"church-platform-backend/internal/features/event/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.EventRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, title, date, time, description, location, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Date, event.Time, event.Description,
		event.Location, event.Category, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, title, date, time, description, location, category, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event models.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Date, &event.Time, &event.Description,
		&event.Location, &event.Category, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (r *postgresRepository) List(ctx context.Context, limit int) ([]*models.Event, error) {
	query := `
		SELECT id, title, date, time, description, location, category, created_at, updated_at
		FROM events
		ORDER BY date ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Date, &event.Time, &event.Description,
			&event.Location, &event.Category, &event.CreatedAt, &event.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}
