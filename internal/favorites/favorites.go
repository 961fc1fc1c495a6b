// package favorites keeps the local favorite-movie index in sync with the server
package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/services"
	"github.com/st-doval17/myflix/internal/session"
	"github.com/st-doval17/myflix/internal/shared"
)

// Index tracks which movies the logged-in user has favorited. Membership
// only changes after the server acknowledges the change, so the index never
// drifts ahead of the remote profile.
type Index struct {
	svc   services.Service
	store session.Store

	mu      sync.Mutex
	session *models.Session
}

// NewIndex creates an index backed by the given service and session store.
func NewIndex(svc services.Service, store session.Store) *Index {
	return &Index{svc: svc, store: store}
}

// Initialize seeds the index from a stored session. A nil session leaves
// the index unauthenticated.
func (ix *Index) Initialize(sess *models.Session) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.session = sess
}

// IsFavorite reports whether the movie is currently favorited. It always
// answers from the local index and never issues a request.
func (ix *Index) IsFavorite(movieID string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.session == nil {
		return false
	}

	return ix.session.User.HasFavorite(movieID)
}

// List returns the favorited movie IDs in profile order.
func (ix *Index) List() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.session == nil {
		return nil
	}

	out := make([]string, len(ix.session.User.FavoriteMovies))
	copy(out, ix.session.User.FavoriteMovies)
	return out
}

// Add favorites a movie. Adding an already-favorited movie still round-trips
// to the server, matching its idempotent handling.
func (ix *Index) Add(ctx context.Context, movieID string) error {
	return ix.apply(ctx, movieID, true)
}

// Remove unfavorites a movie.
func (ix *Index) Remove(ctx context.Context, movieID string) error {
	return ix.apply(ctx, movieID, false)
}

// Toggle flips a movie's favorite status, reporting the new status. Toggling
// twice restores the original profile.
func (ix *Index) Toggle(ctx context.Context, movieID string) (bool, error) {
	ix.mu.Lock()
	var favorited bool
	if ix.session != nil {
		favorited = ix.session.User.HasFavorite(movieID)
	}
	ix.mu.Unlock()

	if err := ix.apply(ctx, movieID, !favorited); err != nil {
		return favorited, err
	}

	return !favorited, nil
}

// apply performs the remote mutation and, once acknowledged, replaces the
// local profile and persists it.
func (ix *Index) apply(ctx context.Context, movieID string, add bool) error {
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	ix.mu.Lock()
	sess := ix.session
	ix.mu.Unlock()

	if sess == nil || !sess.Valid() {
		return fmt.Errorf("%w: favorites require a session", shared.ErrNotAuthenticated)
	}

	var (
		user *models.User
		err  error
	)
	if add {
		user, err = ix.svc.AddFavorite(ctx, sess.User.Username, movieID)
	} else {
		user, err = ix.svc.RemoveFavorite(ctx, sess.User.Username, movieID)
	}
	if err != nil {
		return err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	updated := &models.Session{User: *user, Token: sess.Token}
	if err := ix.store.Save(updated); err != nil {
		return fmt.Errorf("favorite applied remotely but session not persisted: %w", err)
	}

	ix.session = updated
	return nil
}

// Session returns the current session, or nil when logged out.
func (ix *Index) Session() *models.Session {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	return ix.session
}
