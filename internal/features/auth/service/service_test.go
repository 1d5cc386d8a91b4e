package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"church-platform-backend/internal/common/auth"
	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/features/auth/models"
	"church-platform-backend/internal/features/auth/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users          map[string]*models.User
	createErr      error
	lastLoginCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.lastLoginCalls++
	return nil
}

func (r *fakeUserRepo) AddToDonationTotal(_ context.Context, id string, amount float64) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.DonationTotal += amount
	return nil
}

var testSecret = []byte("test-secret")

func newService(repo repository.UserRepository) AuthService {
	return NewAuthService(repo, testSecret, 30*time.Minute)
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:     "marie@example.org",
		Username:  "marie",
		Password:  "abcd12",
		FirstName: "Marie",
		LastName:  "Dupont",
	}
}

func TestRegisterCreatesMemberAndMintsToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int((30 * time.Minute).Seconds()), resp.ExpiresIn)
	assert.Equal(t, models.RoleMember, resp.User.Role)
	assert.Equal(t, models.StatusActive, resp.User.Status)

	claims, err := auth.ParseToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "marie@example.org", claims.Subject)
	assert.Equal(t, models.RoleMember, claims.Role)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	stored := repo.users[resp.User.ID]
	assert.NotEqual(t, "abcd12", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("abcd12")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "marie2"
	_, err = svc.Register(context.Background(), dup)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeEmailTaken, appErr.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "autre@example.org"
	_, err = svc.Register(context.Background(), dup)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeUsernameTaken, appErr.Code)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(newFakeUserRepo())

	cases := []struct {
		name   string
		mutate func(*models.RegisterRequest)
	}{
		{"bad email", func(r *models.RegisterRequest) { r.Email = "pas-un-email" }},
		{"short username", func(r *models.RegisterRequest) { r.Username = "ab" }},
		{"short password", func(r *models.RegisterRequest) { r.Password = "abcd1" }},
		{"empty first name", func(r *models.RegisterRequest) { r.FirstName = " " }},
		{"empty last name", func(r *models.RegisterRequest) { r.LastName = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerRequest()
			tc.mutate(req)
			_, err := svc.Register(context.Background(), req)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "marie@example.org", Password: "abcd12"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, 1, repo.lastLoginCalls)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "marie@example.org", Password: "mauvais"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, appErr.Code)
}

func TestLoginUnknownEmailGetsSameError(t *testing.T) {
	svc := newService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "inconnu@example.org", Password: "abcd12"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	// same code as a wrong password, so the endpoint does not leak which
	// addresses have accounts
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, appErr.Code)
}

func TestLoginSuspendedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	repo.users[resp.User.ID].Status = models.StatusSuspended

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "marie@example.org", Password: "abcd12"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAccountSuspended, appErr.Code)
}

func TestUpdateProfileAppliesPartialFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	phone := "+1 809 555 0101"
	bio := "Membre depuis 2019"
	updated, err := svc.UpdateProfile(context.Background(), resp.User.ID, &models.UpdateProfileRequest{
		Phone: &phone,
		Bio:   &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Marie", updated.FirstName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := newService(newFakeUserRepo())

	name := "X"
	_, err := svc.UpdateProfile(context.Background(), "missing", &models.UpdateProfileRequest{FirstName: &name})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeUserNotFound, appErr.Code)
}
