package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"church-platform-backend/internal/common/middleware"
	"church-platform-backend/internal/features/auth/models"
	"church-platform-backend/internal/features/auth/repository"
	"church-platform-backend/internal/features/auth/service"
)

var testSecret = []byte("test-secret")

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
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

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ string) error { return nil }

func (r *fakeUserRepo) AddToDonationTotal(_ context.Context, _ string, _ float64) error { return nil }

// newTestRouter builds the same middleware chain cmd/api installs.
func newTestRouter(t *testing.T) (*gin.Engine, *fakeUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo, testSecret, 30*time.Minute)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.BearerAuth(testSecret))

	api := router.Group("/api")
	NewAuthHandler(svc).RegisterRoutes(api)

	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerBody() map[string]any {
	return map[string]any{
		"email":      "marie@example.org",
		"username":   "marie",
		"password":   "abcd12",
		"first_name": "Marie",
		"last_name":  "Dupont",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, "marie", resp.User.Username)
}

func TestRegisterDuplicateEmailReturns409(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, rec.Code)

	body := registerBody()
	body["username"] = "marie2"
	rec = doJSON(t, router, http.MethodPost, "/api/auth/register", "", body)

	require.Equal(t, http.StatusConflict, rec.Code)
	var errResp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.False(t, errResp.Success)
	assert.Equal(t, "Cette adresse e-mail est déjà utilisée", errResp.Detail)
	assert.NotEmpty(t, errResp.RequestID)
}

func TestRegisterMissingFieldsReturns400(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "marie@example.org",
		"password": "abcd12",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "marie@example.org",
		"password": "mauvais",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var errResp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "Email ou mot de passe incorrect", errResp.Detail)
}

func TestMeRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", "pas-un-jeton", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeWithValidToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", resp.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(t, router, http.MethodPut, "/api/auth/profile", resp.AccessToken, map[string]any{
		"phone": "+1 809 555 0101",
		"bio":   "Membre depuis 2019",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.NotNil(t, user.Phone)
	assert.Equal(t, "+1 809 555 0101", *user.Phone)
	assert.Equal(t, "Marie", user.FirstName)
}
