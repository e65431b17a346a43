package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the token snapshot the AuthStore persists between runs.
type Credentials struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStorage persists one credential snapshot. Only the AuthStore writes
// to it; implementations must be safe for concurrent use.
type TokenStorage interface {
	Get() (creds Credentials, ok bool, err error)
	Set(creds Credentials) error
	Clear() error
}

// FileStorage keeps credentials in a JSON file readable only by the owner.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

var _ TokenStorage = (*FileStorage)(nil)

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Get() (Credentials, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, false, err
	}
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

func (s *FileStorage) Set(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStorage is an in-process TokenStorage for tests and ephemeral
// sessions.
type MemoryStorage struct {
	mu    sync.Mutex
	creds Credentials
	ok    bool
}

var _ TokenStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Get() (Credentials, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, s.ok, nil
}

func (s *MemoryStorage) Set(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds, s.ok = creds, true
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds, s.ok = Credentials{}, false
	return nil
}
