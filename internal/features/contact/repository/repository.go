package repository

import (
	"context"
	"errors"

	"church-platform-backend/internal/features/contact/models"
)

var ErrAlreadySubscribed = errors.New("email already subscribed")

type ContactRepository interface {
	CreateMessage(ctx context.Context, message *models.ContactMessage) error
	ListMessages(ctx context.Context, limit int) ([]*models.ContactMessage, error)

	CreateSubscriber(ctx context.Context, subscriber *models.Subscriber) error
	ListSubscribers(ctx context.Context, limit int) ([]*models.Subscriber, error)
}
