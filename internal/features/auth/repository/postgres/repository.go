package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"church-platform-backend/internal/features/auth/models"
	"church-platform-backend/internal/features/auth/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

const userColumns = `id, email, username, password_hash, first_name, last_name,
	phone, address, birth_date, profession, role, status, bio,
	ministry_involvement, donation_total, events_attended,
	education_level, professional_level, national_id, marital_status,
	children_count, conversion_status, ministry_gift,
	created_at, updated_at, last_login`

func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	ministries, err := json.Marshal(user.MinistryInvolvement)
	if err != nil {
		return fmt.Errorf("failed to marshal ministries: %w", err)
	}
	events, err := json.Marshal(user.EventsAttended)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	query := `
		INSERT INTO users (
			id, email, username, password_hash, first_name, last_name,
			phone, address, birth_date, profession, role, status, bio,
			ministry_involvement, donation_total, events_attended,
			education_level, professional_level, national_id, marital_status,
			children_count, conversion_status, ministry_gift,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err = r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.FirstName, user.LastName, user.Phone, user.Address,
		user.BirthDate, user.Profession, user.Role, user.Status, user.Bio,
		ministries, user.DonationTotal, events,
		user.EducationLevel, user.ProfessionalLevel, user.NationalID,
		user.MaritalStatus, user.ChildrenCount, user.ConversionStatus,
		user.MinistryGift, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return repository.ErrEmailTaken
		}
		if isUniqueViolation(err, "users_username_key") {
			return repository.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresRepository) Update(ctx context.Context, user *models.User) error {
	ministries, err := json.Marshal(user.MinistryInvolvement)
	if err != nil {
		return fmt.Errorf("failed to marshal ministries: %w", err)
	}

	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4, address = $5,
			birth_date = $6, profession = $7, bio = $8,
			ministry_involvement = $9, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Phone, user.Address,
		user.BirthDate, user.Profession, user.Bio, ministries)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

func (r *postgresRepository) AddToDonationTotal(ctx context.Context, id string, amount float64) error {
	query := `
		UPDATE users
		SET donation_total = donation_total + $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("failed to update donation total: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresRepository) scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var ministries, events []byte

	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Phone, &user.Address,
		&user.BirthDate, &user.Profession, &user.Role, &user.Status, &user.Bio,
		&ministries, &user.DonationTotal, &events,
		&user.EducationLevel, &user.ProfessionalLevel, &user.NationalID,
		&user.MaritalStatus, &user.ChildrenCount, &user.ConversionStatus,
		&user.MinistryGift, &user.CreatedAt, &user.UpdatedAt, &user.LastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := json.Unmarshal(ministries, &user.MinistryInvolvement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ministries: %w", err)
	}
	if err := json.Unmarshal(events, &user.EventsAttended); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	return &user, nil
}

// isUniqueViolation matches a unique-constraint error on a named index.
// Matching on the message keeps the repository free of a direct pgconn
// dependency.
func isUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") && strings.Contains(msg, constraint)
}
