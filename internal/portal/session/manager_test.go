package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "church-platform-backend/internal/features/auth/models"
	"church-platform-backend/internal/portal/api"
)

// fakeBackend records calls and plays back canned responses.
type fakeBackend struct {
	token string

	loginResp    *authmodels.TokenResponse
	loginErr     error
	registerResp *authmodels.TokenResponse
	registerErr  error
	meResp       *authmodels.User
	meErr        error
	updateResp   *authmodels.User
	updateErr    error

	loginCalls    int
	registerCalls int
	meCalls       int
	updateCalls   int
}

func (f *fakeBackend) SetToken(token string) { f.token = token }

func (f *fakeBackend) Login(_ context.Context, _ authmodels.LoginRequest) (*authmodels.TokenResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, _ authmodels.RegisterRequest) (*authmodels.TokenResponse, error) {
	f.registerCalls++
	return f.registerResp, f.registerErr
}

func (f *fakeBackend) Me(_ context.Context) (*authmodels.User, error) {
	f.meCalls++
	return f.meResp, f.meErr
}

func (f *fakeBackend) UpdateProfile(_ context.Context, _ authmodels.UpdateProfileRequest) (*authmodels.User, error) {
	f.updateCalls++
	return f.updateResp, f.updateErr
}

func memberUser() *authmodels.User {
	return &authmodels.User{
		ID:        "u-1",
		Email:     "marie@example.org",
		Username:  "marie",
		FirstName: "Marie",
		LastName:  "Dupont",
		Role:      authmodels.RoleMember,
	}
}

func tokenResponse(token string) *authmodels.TokenResponse {
	return &authmodels.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   1800,
		User:        memberUser(),
	}
}

func TestLogoutWhenAnonymousIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	store := NewMemoryStore()
	m := NewManager(backend, store)

	require.NoError(t, m.Logout())
	require.NoError(t, m.Logout())

	assert.Nil(t, m.User())
	assert.False(t, m.IsAuthenticated())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestLoginPersistsCredential(t *testing.T) {
	backend := &fakeBackend{loginResp: tokenResponse("tok-abc")}
	store := NewMemoryStore()
	m := NewManager(backend, store)

	require.NoError(t, m.Login(context.Background(), "marie@example.org", "abcd12"))

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-abc", backend.token)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", persisted)
}

func TestInitializeRestoresSessionFromStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save("tok-abc"))

	backend := &fakeBackend{meResp: memberUser()}
	m := NewManager(backend, store)

	require.NoError(t, m.Initialize(context.Background()))

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "marie@example.org", m.User().Email)
	assert.Equal(t, "tok-abc", backend.token)
}

func TestInitializeWithRejectedCredentialPurgesStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save("tok-stale"))

	backend := &fakeBackend{meErr: &api.Error{StatusCode: http.StatusUnauthorized, Detail: "Jeton invalide"}}
	m := NewManager(backend, store)

	require.NoError(t, m.Initialize(context.Background()))

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, backend.token)
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestInitializeWithoutCredentialStaysAnonymous(t *testing.T) {
	backend := &fakeBackend{}
	m := NewManager(backend, NewMemoryStore())

	require.NoError(t, m.Initialize(context.Background()))

	assert.False(t, m.IsAuthenticated())
	assert.Zero(t, backend.meCalls)
}

func TestRegisterMismatchedPasswordsSkipsNetwork(t *testing.T) {
	backend := &fakeBackend{}
	m := NewManager(backend, NewMemoryStore())

	req := authmodels.RegisterRequest{
		Email:     "marie@example.org",
		Username:  "marie",
		Password:  "abc123",
		FirstName: "Marie",
		LastName:  "Dupont",
	}
	err := m.Register(context.Background(), req, "abc124")

	require.Error(t, err)
	assert.Zero(t, backend.registerCalls)
	assert.False(t, m.IsAuthenticated())
}

func TestRegisterPasswordLength(t *testing.T) {
	t.Run("five characters fail locally", func(t *testing.T) {
		backend := &fakeBackend{}
		m := NewManager(backend, NewMemoryStore())

		req := authmodels.RegisterRequest{Email: "a@b.c", Username: "abc", Password: "abcd1", FirstName: "A", LastName: "B"}
		err := m.Register(context.Background(), req, "abcd1")

		require.Error(t, err)
		assert.Zero(t, backend.registerCalls)
	})

	t.Run("six characters reach the backend", func(t *testing.T) {
		backend := &fakeBackend{registerResp: tokenResponse("tok-new")}
		m := NewManager(backend, NewMemoryStore())

		req := authmodels.RegisterRequest{Email: "a@b.c", Username: "abc", Password: "abcd12", FirstName: "A", LastName: "B"}
		err := m.Register(context.Background(), req, "abcd12")

		require.NoError(t, err)
		assert.Equal(t, 1, backend.registerCalls)
		assert.True(t, m.IsAuthenticated())
	})
}

func TestLoginFailureCommitsNothing(t *testing.T) {
	backend := &fakeBackend{loginErr: &api.Error{StatusCode: http.StatusUnauthorized, Detail: "Email ou mot de passe incorrect"}}
	store := NewMemoryStore()
	m := NewManager(backend, store)

	err := m.Login(context.Background(), "marie@example.org", "wrong1")

	require.Error(t, err)
	assert.False(t, m.IsAuthenticated())
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, ErrNoCredential)
}

func TestUpdateProfileLeavesCredentialUntouched(t *testing.T) {
	updated := memberUser()
	updated.FirstName = "Marie-Claire"

	backend := &fakeBackend{loginResp: tokenResponse("tok-abc"), updateResp: updated}
	store := NewMemoryStore()
	m := NewManager(backend, store)
	require.NoError(t, m.Login(context.Background(), "marie@example.org", "abcd12"))

	name := "Marie-Claire"
	require.NoError(t, m.UpdateProfile(context.Background(), authmodels.UpdateProfileRequest{FirstName: &name}))

	assert.Equal(t, "Marie-Claire", m.User().FirstName)
	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", persisted)
	assert.Equal(t, "tok-abc", backend.token)
}

func TestUpdateProfileFailureKeepsLocalIdentity(t *testing.T) {
	backend := &fakeBackend{
		loginResp: tokenResponse("tok-abc"),
		updateErr: errors.New("dial tcp: connection refused"),
	}
	m := NewManager(backend, NewMemoryStore())
	require.NoError(t, m.Login(context.Background(), "marie@example.org", "abcd12"))

	name := "X"
	err := m.UpdateProfile(context.Background(), authmodels.UpdateProfileRequest{FirstName: &name})

	require.Error(t, err)
	assert.Equal(t, "Marie", m.User().FirstName)
}

func TestRoleViews(t *testing.T) {
	m := NewManager(&fakeBackend{}, NewMemoryStore())
	assert.False(t, m.IsAdmin())
	assert.False(t, m.IsMember())

	admin := memberUser()
	admin.Role = authmodels.RoleAdmin
	backend := &fakeBackend{loginResp: &authmodels.TokenResponse{AccessToken: "t", User: admin}}
	m = NewManager(backend, NewMemoryStore())
	require.NoError(t, m.Login(context.Background(), "a@b.c", "abcd12"))

	assert.True(t, m.IsAdmin())
	assert.True(t, m.IsMember())
}

func TestReasonDistinguishesRejectionFromTransport(t *testing.T) {
	rejection := &api.Error{StatusCode: http.StatusConflict, Detail: "Cette adresse e-mail est déjà utilisée"}
	assert.Equal(t, "Cette adresse e-mail est déjà utilisée", Reason(rejection))

	transport := errors.New("dial tcp: connection refused")
	assert.Equal(t, "Erreur de connexion au serveur, veuillez réessayer", Reason(transport))

	assert.Empty(t, Reason(nil))
}
