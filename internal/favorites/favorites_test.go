package favorites

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/session"
	"github.com/st-doval17/myflix/internal/shared"
	tu "github.com/st-doval17/myflix/internal/testing"
)

func loggedIn(favorites ...string) *models.Session {
	return &models.Session{
		User:  models.User{Username: "ada", FavoriteMovies: favorites},
		Token: "jwt-token",
	}
}

func TestIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("initializes from the stored profile", func(t *testing.T) {
		ix := NewIndex(&tu.MockService{}, session.NewMemStore())
		ix.Initialize(loggedIn("m1", "m2"))

		if !ix.IsFavorite("m1") || !ix.IsFavorite("m2") {
			t.Error("expected m1 and m2 to be favorited")
		}

		if ix.IsFavorite("m3") {
			t.Error("expected m3 to be unfavorited")
		}

		if got := ix.List(); len(got) != 2 {
			t.Errorf("expected 2 favorites, got %v", got)
		}
	})

	t.Run("unauthenticated toggle makes no requests", func(t *testing.T) {
		svc := &tu.MockService{}
		ix := NewIndex(svc, session.NewMemStore())

		if _, err := ix.Toggle(ctx, "m1"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}

		if svc.Calls != 0 {
			t.Errorf("expected zero service calls, got %d", svc.Calls)
		}
	})

	t.Run("toggle flips only after the server acknowledges", func(t *testing.T) {
		// Fake profile state on the server side.
		remote := models.User{Username: "ada"}
		svc := &tu.MockService{
			AddFavoriteFunc: func(ctx context.Context, username, movieID string) (*models.User, error) {
				remote.AddFavorite(movieID)
				snapshot := remote
				return &snapshot, nil
			},
			RemoveFavoriteFunc: func(ctx context.Context, username, movieID string) (*models.User, error) {
				remote.RemoveFavorite(movieID)
				snapshot := remote
				return &snapshot, nil
			},
		}

		store := session.NewMemStore()
		ix := NewIndex(svc, store)
		ix.Initialize(loggedIn())

		favorited, err := ix.Toggle(ctx, "m1")
		if err != nil {
			t.Fatalf("expected toggle to succeed, got %v", err)
		}

		if !favorited || !ix.IsFavorite("m1") {
			t.Error("expected m1 to be favorited after first toggle")
		}

		// Toggling twice restores the original profile.
		favorited, err = ix.Toggle(ctx, "m1")
		if err != nil {
			t.Fatalf("expected second toggle to succeed, got %v", err)
		}

		if favorited || ix.IsFavorite("m1") {
			t.Error("expected m1 to be unfavorited after second toggle")
		}

		persisted, err := store.Load()
		if err != nil || persisted == nil {
			t.Fatalf("expected a persisted session, got %+v, %v", persisted, err)
		}

		if persisted.User.HasFavorite("m1") {
			t.Error("expected persisted profile to match the restored state")
		}
	})

	t.Run("failed mutation leaves the index unchanged", func(t *testing.T) {
		svc := &tu.MockService{
			AddFavoriteFunc: func(ctx context.Context, username, movieID string) (*models.User, error) {
				return nil, fmt.Errorf("%w: connection refused", shared.ErrNetwork)
			},
		}

		store := session.NewMemStore()
		ix := NewIndex(svc, store)
		ix.Initialize(loggedIn())

		if _, err := ix.Toggle(ctx, "m1"); !errors.Is(err, shared.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}

		if ix.IsFavorite("m1") {
			t.Error("expected m1 to stay unfavorited after a failed add")
		}

		persisted, err := store.Load()
		if err != nil {
			t.Fatalf("expected load to succeed, got %v", err)
		}

		if persisted != nil {
			t.Errorf("expected no persisted session, got %+v", persisted)
		}
	})

	t.Run("add and remove persist the acknowledged profile", func(t *testing.T) {
		svc := &tu.MockService{
			AddFavoriteFunc: func(ctx context.Context, username, movieID string) (*models.User, error) {
				return &models.User{Username: username, FavoriteMovies: []string{"m1", movieID}}, nil
			},
		}

		store := session.NewMemStore()
		ix := NewIndex(svc, store)
		ix.Initialize(loggedIn("m1"))

		if err := ix.Add(ctx, "m2"); err != nil {
			t.Fatalf("expected add to succeed, got %v", err)
		}

		persisted, _ := store.Load()
		if persisted == nil || !persisted.User.HasFavorite("m2") {
			t.Errorf("expected m2 in the persisted profile, got %+v", persisted)
		}

		if persisted.Token != "jwt-token" {
			t.Errorf("expected the token to be carried over, got %q", persisted.Token)
		}
	})

	t.Run("rejects an empty movie id", func(t *testing.T) {
		ix := NewIndex(&tu.MockService{}, session.NewMemStore())
		ix.Initialize(loggedIn())

		if err := ix.Add(ctx, ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
