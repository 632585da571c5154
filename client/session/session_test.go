package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

func TestGet_NoSession(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	_, err := s.Get()
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got: %v", err)
	}
}

func TestSetGet_RoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	want := entities.Session{Username: "alice", Role: entities.RoleCustomer}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestSet_Overwrites(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	if err := s.Set(entities.Session{Username: "alice", Role: entities.RoleCustomer}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(entities.Session{Username: "bob", Role: entities.RolePharmacist}); err != nil {
		t.Fatalf("Second Set failed: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Username != "bob" || got.Role != entities.RolePharmacist {
		t.Errorf("Expected overwritten session, got %+v", got)
	}
}

func TestGet_CorruptSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{{{"},
		{"wrong shape", `"just a string"`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			s := NewFileStore(path)
			_, err := s.Get()
			if !errors.Is(err, ErrCorruptSession) {
				t.Errorf("Expected ErrCorruptSession for %q, got: %v", tt.content, err)
			}
		})
	}
}

func TestSet_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	s := NewFileStore(path)

	if err := s.Set(entities.Session{Username: "alice", Role: entities.RoleCustomer}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected session file to exist: %v", err)
	}
}
