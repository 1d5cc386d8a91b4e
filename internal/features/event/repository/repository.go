package repository

import (
	"context"
	"errors"

	"church-platform-backend/internal/features/event/models"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, limit int) ([]*models.Event, error)
}
