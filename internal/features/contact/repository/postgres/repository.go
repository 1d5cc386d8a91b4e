package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"church-platform-backend/internal/features/contact/models"
	"church-platform-backend/internal/features/contact/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ContactRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateMessage(ctx context.Context, message *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.Name, message.Email, message.Phone,
		message.Subject, message.Message, message.Status, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListMessages(ctx context.Context, limit int) ([]*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, phone, subject, message, status, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone,
			&m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

func (r *postgresRepository) CreateSubscriber(ctx context.Context, subscriber *models.Subscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, name, active, subscribed_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		subscriber.ID, subscriber.Email, subscriber.Name,
		subscriber.Active, subscriber.SubscribedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return repository.ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListSubscribers(ctx context.Context, limit int) ([]*models.Subscriber, error) {
	query := `
		SELECT id, email, name, active, subscribed_at
		FROM newsletter_subscribers
		WHERE active = TRUE
		ORDER BY subscribed_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []*models.Subscriber
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Active, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, &s)
	}

	return subscribers, rows.Err()
}
