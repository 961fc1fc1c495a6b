// package session persists the logged-in user and bearer token between runs
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/st-doval17/myflix/internal/models"
)

// Store persists a session between runs. Load returns (nil, nil) when no
// valid session exists so callers can distinguish "logged out" from a real
// read failure.
type Store interface {
	// Save writes the session. User and token are committed together.
	Save(session *models.Session) error

	// Load reads the stored session, or nil when none is stored.
	Load() (*models.Session, error)

	// Clear removes the stored session. Clearing an empty store is a no-op.
	Clear() error
}

// FileStore keeps the session in a single JSON file. Writes go through a
// temp file and a rename, so the file always holds either a complete
// session or nothing.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the session atomically.
func (s *FileStore) Save(session *models.Session) error {
	if !session.Valid() {
		return fmt.Errorf("refusing to save incomplete session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set session permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit session: %w", err)
	}

	return nil
}

// Load reads the stored session. A missing file or an incomplete document
// both count as no session.
func (s *FileStore) Load() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	if !session.Valid() {
		return nil, nil
	}

	return &session, nil
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

// MemStore keeps the session in memory, for tests.
type MemStore struct {
	mu      sync.Mutex
	session *models.Session
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(session *models.Session) error {
	if !session.Valid() {
		return fmt.Errorf("refusing to save incomplete session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *session
	s.session = &clone
	return nil
}

func (s *MemStore) Load() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, nil
	}

	clone := *s.session
	return &clone, nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return nil
}
