package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/st-doval17/myflix/internal/models"
)

func TestFileStore(t *testing.T) {
	newStore := func(t *testing.T) (*FileStore, string) {
		t.Helper()
		path := filepath.Join(t.TempDir(), "session.json")
		return NewFileStore(path), path
	}

	sample := &models.Session{
		User:  models.User{Username: "ada", Email: "ada@example.com", FavoriteMovies: []string{"m1"}},
		Token: "jwt-token",
	}

	t.Run("save and load round-trip", func(t *testing.T) {
		store, _ := newStore(t)
		if err := store.Save(sample); err != nil {
			t.Fatalf("expected save to succeed, got %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("expected load to succeed, got %v", err)
		}

		if loaded == nil {
			t.Fatal("expected a session, got nil")
		}

		if loaded.Token != "jwt-token" {
			t.Errorf("expected token jwt-token, got %q", loaded.Token)
		}

		if loaded.User.Username != "ada" {
			t.Errorf("expected username ada, got %q", loaded.User.Username)
		}

		if len(loaded.User.FavoriteMovies) != 1 || loaded.User.FavoriteMovies[0] != "m1" {
			t.Errorf("expected favorites [m1], got %v", loaded.User.FavoriteMovies)
		}
	})

	t.Run("load without a file returns nil", func(t *testing.T) {
		store, _ := newStore(t)
		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("expected load to succeed, got %v", err)
		}

		if loaded != nil {
			t.Errorf("expected nil session, got %+v", loaded)
		}
	})

	t.Run("half-populated file counts as absent", func(t *testing.T) {
		store, path := newStore(t)
		if err := os.WriteFile(path, []byte(`{"token":"jwt-token"}`), 0600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("expected load to succeed, got %v", err)
		}

		if loaded != nil {
			t.Errorf("expected nil session for incomplete document, got %+v", loaded)
		}
	})

	t.Run("save rejects an incomplete session", func(t *testing.T) {
		store, path := newStore(t)
		if err := store.Save(&models.Session{Token: "jwt-token"}); err == nil {
			t.Error("expected save of incomplete session to fail")
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected no file to be written")
		}
	})

	t.Run("clear removes the session", func(t *testing.T) {
		store, path := newStore(t)
		if err := store.Save(sample); err != nil {
			t.Fatalf("expected save to succeed, got %v", err)
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("expected clear to succeed, got %v", err)
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected the session file to be gone")
		}

		loaded, err := store.Load()
		if err != nil || loaded != nil {
			t.Errorf("expected nil session after clear, got %+v, %v", loaded, err)
		}
	})

	t.Run("clear is a no-op without a file", func(t *testing.T) {
		store, _ := newStore(t)
		if err := store.Clear(); err != nil {
			t.Errorf("expected clear to succeed, got %v", err)
		}
	})

	t.Run("save creates missing directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
		store := NewFileStore(path)
		if err := store.Save(sample); err != nil {
			t.Fatalf("expected save to succeed, got %v", err)
		}
	})
}

func TestMemStore(t *testing.T) {
	sample := &models.Session{User: models.User{Username: "ada"}, Token: "jwt-token"}

	t.Run("round-trip and clear", func(t *testing.T) {
		store := NewMemStore()
		if err := store.Save(sample); err != nil {
			t.Fatalf("expected save to succeed, got %v", err)
		}

		loaded, err := store.Load()
		if err != nil || loaded == nil || loaded.Token != "jwt-token" {
			t.Fatalf("unexpected load result: %+v, %v", loaded, err)
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("expected clear to succeed, got %v", err)
		}

		loaded, err = store.Load()
		if err != nil || loaded != nil {
			t.Errorf("expected nil session after clear, got %+v, %v", loaded, err)
		}
	})

	t.Run("load returns a copy", func(t *testing.T) {
		store := NewMemStore()
		if err := store.Save(sample); err != nil {
			t.Fatalf("expected save to succeed, got %v", err)
		}

		first, _ := store.Load()
		first.Token = "mutated"

		second, _ := store.Load()
		if second.Token != "jwt-token" {
			t.Errorf("expected stored token to be unchanged, got %q", second.Token)
		}
	})
}
