// Package session owns the portal's authentication context: one bearer
// token plus the resolved member identity, persisted across restarts.
// All identity-dependent code reads the context through this manager and
// never mutates the token on its own.
package session

import (
	"context"
	"sync"

	"church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/validation"
	authmodels "church-platform-backend/internal/features/auth/models"
	"church-platform-backend/internal/portal/api"
)

// Backend is the slice of the API client the manager needs. *api.Client
// satisfies it; tests substitute a fake.
type Backend interface {
	SetToken(token string)
	Login(ctx context.Context, req authmodels.LoginRequest) (*authmodels.TokenResponse, error)
	Register(ctx context.Context, req authmodels.RegisterRequest) (*authmodels.TokenResponse, error)
	Me(ctx context.Context) (*authmodels.User, error)
	UpdateProfile(ctx context.Context, req authmodels.UpdateProfileRequest) (*authmodels.User, error)
}

// Manager holds the single authentication context of the process.
type Manager struct {
	backend Backend
	store   CredentialStore

	mu      sync.Mutex
	user    *authmodels.User
	loading bool
}

func NewManager(backend Backend, store CredentialStore) *Manager {
	return &Manager{backend: backend, store: store}
}

// begin marks an operation in flight. Callers must pair it with end on
// every exit path so Loading never sticks.
func (m *Manager) begin() {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
}

func (m *Manager) end() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// Loading reports whether an operation is currently in flight. UI code
// disables triggering controls while this is true.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Initialize restores the session at process start. A persisted token is
// validated against the identity endpoint; any failure to resolve the
// identity discards the token and leaves the session anonymous. Always
// returns nil so startup never fails on a stale credential.
func (m *Manager) Initialize(ctx context.Context) error {
	m.begin()
	defer m.end()

	token, err := m.store.Load()
	if err != nil {
		return nil
	}

	m.backend.SetToken(token)
	user, err := m.backend.Me(ctx)
	if err != nil {
		m.backend.SetToken("")
		_ = m.store.Clear()
		return nil
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session. On success the token is
// persisted for future starts. On failure nothing changes.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.begin()
	defer m.end()

	resp, err := m.backend.Login(ctx, authmodels.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	return m.commit(resp)
}

// Register creates an account and signs the member in. The password and
// its confirmation are checked locally first; a mismatch or an
// under-length password fails without touching the network.
func (m *Manager) Register(ctx context.Context, req authmodels.RegisterRequest, passwordConfirm string) error {
	if err := validation.ValidatePassword(req.Password); err != nil {
		return err
	}
	if req.Password != passwordConfirm {
		return errors.New(errors.ErrCodeValidation, "Les mots de passe ne correspondent pas")
	}

	m.begin()
	defer m.end()

	resp, err := m.backend.Register(ctx, req)
	if err != nil {
		return err
	}
	return m.commit(resp)
}

// UpdateProfile applies a partial profile update. The server copy is
// authoritative and replaces the in-memory identity; the stored token is
// not touched.
func (m *Manager) UpdateProfile(ctx context.Context, req authmodels.UpdateProfileRequest) error {
	m.begin()
	defer m.end()

	user, err := m.backend.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

// Logout drops the session in memory and in the store. Safe to call when
// already anonymous.
func (m *Manager) Logout() error {
	m.begin()
	defer m.end()

	m.backend.SetToken("")
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return m.store.Clear()
}

// commit installs a freshly issued token and identity, persisting the
// token for future process starts.
func (m *Manager) commit(resp *authmodels.TokenResponse) error {
	m.backend.SetToken(resp.AccessToken)
	if err := m.store.Save(resp.AccessToken); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Impossible d'enregistrer la session")
	}
	m.mu.Lock()
	m.user = resp.User
	m.mu.Unlock()
	return nil
}

// User returns the resolved identity, or nil when anonymous.
func (m *Manager) User() *authmodels.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) IsAuthenticated() bool {
	return m.User() != nil
}

func (m *Manager) IsAdmin() bool {
	u := m.User()
	return u != nil && u.Role == authmodels.RoleAdmin
}

// IsMember reports whether the identity holds at least member rights.
func (m *Manager) IsMember() bool {
	u := m.User()
	return u != nil && (u.Role == authmodels.RoleMember || u.Role == authmodels.RoleAdmin)
}

// Reason turns an operation error into the text shown to the user. A
// backend rejection carries its own message; anything else is a
// transport fault and gets the generic retry advice.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := errors.AsAppError(err); ok {
		return apiErr.Message
	}
	if api.IsServerError(err) {
		return err.Error()
	}
	return "Erreur de connexion au serveur, veuillez réessayer"
}
