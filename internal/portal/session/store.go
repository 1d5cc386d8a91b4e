package session

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoCredential is returned by a store when no token is persisted.
var ErrNoCredential = errors.New("aucun jeton enregistré")

// CredentialStore persists the bearer token across process restarts.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a single file under the user's home
// directory, readable only by the owner.
type FileStore struct {
	path string
}

const defaultTokenFile = ".church-portal-token"

// NewFileStore builds a store at the given path. An empty path falls
// back to a dotfile in the user's home directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, defaultTokenFile)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoCredential
	}
	return string(data), nil
}

func (s *FileStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-process store used by tests and one-shot
// commands that must not touch the filesystem.
type MemoryStore struct {
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, error) {
	if !s.set {
		return "", ErrNoCredential
	}
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.token = token
	s.set = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.token = ""
	s.set = false
	return nil
}
