// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/st-doval17/myflix/internal/models"
)

// MockService is a configurable test double for [services.Service]. Each
// function field overrides the matching method; unset fields return benign
// zero values.
type MockService struct {
	RegisterFunc       func(ctx context.Context, input models.UserInput) (*models.User, error)
	LoginFunc          func(ctx context.Context, username, password string) (*models.Session, error)
	MoviesFunc         func(ctx context.Context) ([]models.Movie, error)
	MovieFunc          func(ctx context.Context, title string) (*models.Movie, error)
	ByDirectorFunc     func(ctx context.Context, name string) ([]models.Movie, error)
	ByGenreFunc        func(ctx context.Context, name string) ([]models.Movie, error)
	UserFunc           func(ctx context.Context, username string) (*models.User, error)
	AddFavoriteFunc    func(ctx context.Context, username, movieID string) (*models.User, error)
	RemoveFavoriteFunc func(ctx context.Context, username, movieID string) (*models.User, error)
	UpdateUserFunc     func(ctx context.Context, username string, patch models.UserPatch) (*models.User, error)
	DeleteUserFunc     func(ctx context.Context, username string) error

	// Calls counts every method invocation, for asserting zero-call paths.
	Calls int
}

func (m *MockService) Register(ctx context.Context, input models.UserInput) (*models.User, error) {
	m.Calls++
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &models.User{Username: input.Username, Email: input.Email}, nil
}

func (m *MockService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	m.Calls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &models.Session{User: models.User{Username: username}, Token: "mock-token"}, nil
}

func (m *MockService) Authenticate(token string) {}

func (m *MockService) Movies(ctx context.Context) ([]models.Movie, error) {
	m.Calls++
	if m.MoviesFunc != nil {
		return m.MoviesFunc(ctx)
	}
	return []models.Movie{}, nil
}

func (m *MockService) Movie(ctx context.Context, title string) (*models.Movie, error) {
	m.Calls++
	if m.MovieFunc != nil {
		return m.MovieFunc(ctx, title)
	}
	return &models.Movie{ID: "mock-id", Title: title}, nil
}

func (m *MockService) MoviesByDirector(ctx context.Context, name string) ([]models.Movie, error) {
	m.Calls++
	if m.ByDirectorFunc != nil {
		return m.ByDirectorFunc(ctx, name)
	}
	return []models.Movie{}, nil
}

func (m *MockService) MoviesByGenre(ctx context.Context, name string) ([]models.Movie, error) {
	m.Calls++
	if m.ByGenreFunc != nil {
		return m.ByGenreFunc(ctx, name)
	}
	return []models.Movie{}, nil
}

func (m *MockService) User(ctx context.Context, username string) (*models.User, error) {
	m.Calls++
	if m.UserFunc != nil {
		return m.UserFunc(ctx, username)
	}
	return &models.User{Username: username}, nil
}

func (m *MockService) AddFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	m.Calls++
	if m.AddFavoriteFunc != nil {
		return m.AddFavoriteFunc(ctx, username, movieID)
	}
	return &models.User{Username: username, FavoriteMovies: []string{movieID}}, nil
}

func (m *MockService) RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	m.Calls++
	if m.RemoveFavoriteFunc != nil {
		return m.RemoveFavoriteFunc(ctx, username, movieID)
	}
	return &models.User{Username: username}, nil
}

func (m *MockService) UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	m.Calls++
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, username, patch)
	}
	return &models.User{Username: username}, nil
}

func (m *MockService) DeleteUser(ctx context.Context, username string) error {
	m.Calls++
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, username)
	}
	return nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
