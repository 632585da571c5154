// Package session persists the signed-in user's identity between runs of the
// client. It is a single-record store: one JSON file holding the current
// session, overwritten on every login or signup.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

var (
	// ErrNoSession means no session has been stored yet.
	ErrNoSession = errors.New("no session stored")

	// ErrCorruptSession means the stored session could not be parsed.
	ErrCorruptSession = errors.New("stored session is corrupt")
)

// Store reads and writes the single session record.
type Store interface {
	Get() (entities.Session, error)
	Set(entities.Session) error
}

// FileStore keeps the session in a JSON file.
type FileStore struct {
	path string
}

// Compile-time check to ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the session file location under the user config dir,
// falling back to the working directory when the config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".farma-session.json"
	}
	return filepath.Join(dir, "farma", "session.json")
}

// Get returns the stored session. Absence is ErrNoSession; unparseable
// content is ErrCorruptSession, never a panic.
func (s *FileStore) Get() (entities.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entities.Session{}, ErrNoSession
	}
	if err != nil {
		return entities.Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess entities.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return entities.Session{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if sess.Username == "" {
		return entities.Session{}, ErrCorruptSession
	}

	return sess, nil
}

// Set overwrites the stored session.
func (s *FileStore) Set(sess entities.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}
