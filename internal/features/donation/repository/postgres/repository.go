package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"church-platform-backend/internal/features/donation/models"
	"church-platform-backend/internal/features/donation/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.DonationRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	query := `
		INSERT INTO donations (
			id, user_id, email, donor_name, amount, currency, donation_type,
			message, anonymous, payment_session_id, payment_status, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		donation.ID, donation.UserID, donation.Email, donation.DonorName,
		donation.Amount, donation.Currency, donation.DonationType,
		donation.Message, donation.Anonymous, donation.PaymentSessionID,
		donation.PaymentStatus, donation.Status, donation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}

func (r *postgresRepository) DeleteDonation(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete donation: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetDonationSession(ctx context.Context, donationID, sessionID string) error {
	query := `UPDATE donations SET payment_session_id = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, donationID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set donation session: %w", err)
	}

	return checkAffected(result, repository.ErrDonationNotFound)
}

func (r *postgresRepository) CompleteDonation(ctx context.Context, id string, completedAt time.Time) error {
	query := `
		UPDATE donations
		SET payment_status = $2, status = $3, completed_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id, models.PaymentPaid, models.StatusCompleted, completedAt)
	if err != nil {
		return fmt.Errorf("failed to complete donation: %w", err)
	}

	return checkAffected(result, repository.ErrDonationNotFound)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Donation, error) {
	query := `
		SELECT id, user_id, email, donor_name, amount, currency, donation_type,
			message, anonymous, payment_session_id, payment_status, status,
			created_at, completed_at
		FROM donations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	var donations []*models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Email, &d.DonorName, &d.Amount, &d.Currency,
			&d.DonationType, &d.Message, &d.Anonymous, &d.PaymentSessionID,
			&d.PaymentStatus, &d.Status, &d.CreatedAt, &d.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, &d)
	}

	return donations, rows.Err()
}

func (r *postgresRepository) CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (
			id, session_id, user_id, email, amount, currency,
			payment_status, status, donation_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.SessionID, tx.UserID, tx.Email, tx.Amount, tx.Currency,
		tx.PaymentStatus, tx.Status, tx.DonationID, tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetTransactionBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	query := `
		SELECT id, session_id, user_id, email, amount, currency,
			payment_status, status, donation_id, created_at, updated_at, completed_at
		FROM payment_transactions
		WHERE session_id = $1
	`

	var tx models.PaymentTransaction
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&tx.ID, &tx.SessionID, &tx.UserID, &tx.Email, &tx.Amount, &tx.Currency,
		&tx.PaymentStatus, &tx.Status, &tx.DonationID,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}

	return &tx, nil
}

func (r *postgresRepository) UpdateTransactionStatus(ctx context.Context, sessionID, paymentStatus, status string, completedAt *time.Time) error {
	query := `
		UPDATE payment_transactions
		SET payment_status = $2, status = $3, completed_at = COALESCE($4, completed_at), updated_at = NOW()
		WHERE session_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, sessionID, paymentStatus, status, completedAt)
	if err != nil {
		return fmt.Errorf("failed to update payment transaction: %w", err)
	}

	return checkAffected(result, repository.ErrTransactionNotFound)
}

func (r *postgresRepository) Stats(ctx context.Context, monthStart time.Time) (*models.Stats, error) {
	query := `
		SELECT
			COALESCE(SUM(amount), 0),
			COUNT(*),
			COALESCE(SUM(amount) FILTER (WHERE completed_at >= $1), 0),
			COUNT(*) FILTER (WHERE completed_at >= $1)
		FROM donations
		WHERE status = $2
	`

	var stats models.Stats
	err := r.db.QueryRowContext(ctx, query, monthStart, models.StatusCompleted).Scan(
		&stats.TotalAmount, &stats.TotalCount,
		&stats.MonthlyAmount, &stats.MonthlyCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load donation stats: %w", err)
	}

	return &stats, nil
}

func checkAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
