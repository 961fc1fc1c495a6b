// package services defines interface Service for the remote movie catalog API
package services

import (
	"context"

	"github.com/st-doval17/myflix/internal/models"
)

// Service is the single point of contact with the remote movie catalog.
// All operations are non-retrying: a failed call surfaces its error and
// never partially mutates client state.
type Service interface {
	// Register creates a new account. No token is required.
	Register(ctx context.Context, input models.UserInput) (*models.User, error)

	// Login exchanges credentials for a user profile and bearer token.
	Login(ctx context.Context, username, password string) (*models.Session, error)

	// Authenticate installs the bearer token used by all protected operations.
	Authenticate(token string)

	// Movies retrieves the full catalog.
	Movies(ctx context.Context) ([]models.Movie, error)

	// Movie retrieves a single movie by title.
	Movie(ctx context.Context, title string) (*models.Movie, error)

	// MoviesByDirector retrieves all movies by the named director.
	MoviesByDirector(ctx context.Context, name string) ([]models.Movie, error)

	// MoviesByGenre retrieves all movies in the named genre.
	MoviesByGenre(ctx context.Context, name string) ([]models.Movie, error)

	// User retrieves a profile by username.
	User(ctx context.Context, username string) (*models.User, error)

	// AddFavorite marks a movie as a favorite and returns the updated profile.
	AddFavorite(ctx context.Context, username, movieID string) (*models.User, error)

	// RemoveFavorite unmarks a favorite and returns the updated profile.
	RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error)

	// UpdateUser applies a profile patch and returns the updated profile.
	UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.User, error)

	// DeleteUser deletes the account. Success requires the server's
	// deletion confirmation phrase in the response body.
	DeleteUser(ctx context.Context, username string) error

	// Name returns the service name for display.
	Name() string
}
