package banksdk

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// tokenFileName is the fixed name the bearer token is stored under. It is
// the only client-side state that survives process restarts.
const tokenFileName = "token"

// TokenStore persists the opaque bearer token across process restarts.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// FileTokenStore keeps the token in a fixed-name file inside a directory,
// by default under the user's configuration directory.
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore creates a store rooted at dir. An empty dir selects
// os.UserConfigDir()/kumbara.
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(configDir, "kumbara")
	}
	return &FileTokenStore{dir: dir}, nil
}

func (s *FileTokenStore) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

// Save writes the token with owner-only permissions, creating the directory
// if needed.
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0o600)
}

// Load returns the persisted token, or "" when none is stored.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the persisted token. A missing file is not an error.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryTokenStore is an in-process TokenStore for tests and harnesses.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
