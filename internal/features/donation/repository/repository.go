package repository

import (
	"context"
	"errors"
	"time"

	"church-platform-backend/internal/features/donation/models"
)

var (
	ErrDonationNotFound    = errors.New("donation not found")
	ErrTransactionNotFound = errors.New("payment transaction not found")
)

type DonationRepository interface {
	CreateDonation(ctx context.Context, donation *models.Donation) error
	DeleteDonation(ctx context.Context, id string) error
	SetDonationSession(ctx context.Context, donationID, sessionID string) error
	CompleteDonation(ctx context.Context, id string, completedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Donation, error)

	CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) error
	GetTransactionBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	UpdateTransactionStatus(ctx context.Context, sessionID, paymentStatus, status string, completedAt *time.Time) error

	Stats(ctx context.Context, monthStart time.Time) (*models.Stats, error)
}
