package models

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
)

// Genre describes a movie genre as served by the catalog.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Director describes a movie's director.
//
// DeathYear is nil for living directors.
type Director struct {
	Name      string `json:"Name"`
	Bio       string `json:"Bio"`
	BirthYear int    `json:"Birth"`
	DeathYear *int   `json:"Death,omitempty"`
}

// Movie is a single catalog entry. Movies are read-only from the client's
// perspective; they are sourced entirely from the remote service.
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"Title"`
	Description string   `json:"Description"`
	Genre       Genre    `json:"Genre"`
	Director    Director `json:"Director"`
	ImagePath   string   `json:"ImagePath"`
	Featured    bool     `json:"Featured"`
}

// CheckResponse rejects movie payloads missing required fields, so malformed
// server data surfaces at the client boundary instead of downstream.
func (m *Movie) CheckResponse() error {
	if m.ID == "" || m.Title == "" {
		return fmt.Errorf("movie record missing _id or Title")
	}
	return nil
}

// User is the account profile held by the catalog service.
//
// Password is write-only: it is sent on registration and login and never
// expected back from the server.
type User struct {
	Username       string   `json:"Username"`
	Password       string   `json:"Password,omitempty"`
	Email          string   `json:"Email"`
	Birthday       string   `json:"Birthday,omitempty"`
	FavoriteMovies []string `json:"FavoriteMovies"`
}

// HasFavorite reports whether movieID is in the user's favorites list.
func (u *User) HasFavorite(movieID string) bool {
	return slices.Contains(u.FavoriteMovies, movieID)
}

// AddFavorite appends movieID to the favorites list if not already present.
func (u *User) AddFavorite(movieID string) {
	if !u.HasFavorite(movieID) {
		u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	}
}

// RemoveFavorite deletes movieID from the favorites list if present.
func (u *User) RemoveFavorite(movieID string) {
	u.FavoriteMovies = slices.DeleteFunc(u.FavoriteMovies, func(id string) bool {
		return id == movieID
	})
}

// CheckResponse rejects user payloads missing the identity key.
func (u *User) CheckResponse() error {
	if u.Username == "" {
		return fmt.Errorf("user record missing Username")
	}
	return nil
}

// UserInput carries the fields a user supplies at registration.
type UserInput struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
	Birthday string `json:"Birthday,omitempty"`
}

// Validate checks registration input before it is sent to the server.
func (in *UserInput) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if len(in.Password) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return fmt.Errorf("invalid email address: %w", err)
		}
	}
	return nil
}

// UserPatch carries the fields a profile edit may change. Zero-valued fields
// are omitted from the request body and left unchanged by the server.
type UserPatch struct {
	Username string `json:"Username,omitempty"`
	Password string `json:"Password,omitempty"`
	Email    string `json:"Email,omitempty"`
	Birthday string `json:"Birthday,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p *UserPatch) Empty() bool {
	return p.Username == "" && p.Password == "" && p.Email == "" && p.Birthday == ""
}

// Session is the tuple of authenticated user profile and bearer token held
// durably on the client. User and Token are both present or both absent,
// never partially set.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Valid reports whether both halves of the session are present.
func (s *Session) Valid() bool {
	return s != nil && s.User.Username != "" && s.Token != ""
}
