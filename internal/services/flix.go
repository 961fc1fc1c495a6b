package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://sandoval-flixdb-eadce14b2925.herokuapp.com"

// deleteConfirmation is the exact substring the server must return for an
// account deletion to be treated as successful. Any other body is a
// protocol violation, never a silent success.
const deleteConfirmation = "was deleted"

// FlixService implements [Service] against the myFlix REST API.
//
// The bearer token is attached via an [oauth2.StaticTokenSource]-backed
// client, so every authenticated request carries "Authorization: Bearer".
type FlixService struct {
	baseURL    string
	httpClient *http.Client
	authClient *http.Client
	token      string
	limiter    *rate.Limiter
}

// NewFlixService creates a catalog client for the given base URL.
//
// A nil client defaults to [http.DefaultClient]. When rps is positive,
// outbound requests are throttled to that many per second.
func NewFlixService(baseURL string, client *http.Client, rps float64) *FlixService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &FlixService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    limiter,
	}
}

// Name returns the service name.
func (s *FlixService) Name() string {
	return "myFlix"
}

// Authenticate installs the bearer token for subsequent protected calls.
//
// An empty token clears authentication.
func (s *FlixService) Authenticate(token string) {
	s.token = token
	if token == "" {
		s.authClient = nil
		return
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, s.httpClient)
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	s.authClient = oauth2.NewClient(ctx, source)
}

// Authenticated reports whether a bearer token is installed.
func (s *FlixService) Authenticated() bool {
	return s.token != ""
}

// doRequest performs a request against the API and decodes a JSON response
// into result when result is non-nil. Authenticated requests go through the
// bearer-token client; unauthenticated ones require no token.
func (s *FlixService) doRequest(ctx context.Context, method, endpoint string, body, result any, authed bool) error {
	client := s.httpClient
	if authed {
		if s.authClient == nil {
			return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
		}
		client = s.authClient
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode body: %v", shared.ErrUnexpectedResponse, err)
		}
	}

	return nil
}

// statusError maps a non-2xx response to the error taxonomy.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(body))

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = shared.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = shared.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = shared.ErrValidation
	default:
		sentinel = shared.ErrAPIRequest
	}

	if detail != "" {
		return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, detail)
	}
	return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
}

// Register creates a new account via POST /users.
func (s *FlixService) Register(ctx context.Context, input models.UserInput) (*models.User, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	var user models.User
	if err := s.doRequest(ctx, http.MethodPost, "/users", input, &user, false); err != nil {
		return nil, err
	}

	if err := user.CheckResponse(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
	}

	return &user, nil
}

// Login exchanges credentials for a session via POST /login.
//
// Credentials travel as query parameters, matching the server contract.
func (s *FlixService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidCredentials)
	}

	query := url.Values{}
	query.Set("Username", username)
	query.Set("Password", password)

	var result struct {
		User  *models.User `json:"user"`
		Token string       `json:"token"`
	}

	err := s.doRequest(ctx, http.MethodPost, "/login?"+query.Encode(), nil, &result, false)
	if err != nil {
		// The server answers a bad username/password with 400 or 401;
		// both mean rejected credentials at this endpoint.
		if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, shared.ErrValidation) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if result.User == nil || result.Token == "" {
		return nil, fmt.Errorf("%w: login response missing user or token", shared.ErrUnexpectedResponse)
	}
	if err := result.User.CheckResponse(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
	}

	return &models.Session{User: *result.User, Token: result.Token}, nil
}

// Movies retrieves the full catalog via GET /movies.
func (s *FlixService) Movies(ctx context.Context) ([]models.Movie, error) {
	return s.movieList(ctx, "/movies")
}

// Movie retrieves a single movie by title via GET /movies/{title}.
func (s *FlixService) Movie(ctx context.Context, title string) (*models.Movie, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: movie title", shared.ErrMissingArgument)
	}

	var movie models.Movie
	endpoint := "/movies/" + url.PathEscape(title)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &movie, true); err != nil {
		return nil, err
	}

	if err := movie.CheckResponse(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
	}

	return &movie, nil
}

// MoviesByDirector retrieves movies via GET /movies/director/{name}.
func (s *FlixService) MoviesByDirector(ctx context.Context, name string) ([]models.Movie, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: director name", shared.ErrMissingArgument)
	}
	return s.movieList(ctx, "/movies/director/"+url.PathEscape(name))
}

// MoviesByGenre retrieves movies via GET /movies/genre/{name}.
func (s *FlixService) MoviesByGenre(ctx context.Context, name string) ([]models.Movie, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: genre name", shared.ErrMissingArgument)
	}
	return s.movieList(ctx, "/movies/genre/"+url.PathEscape(name))
}

func (s *FlixService) movieList(ctx context.Context, endpoint string) ([]models.Movie, error) {
	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &movies, true); err != nil {
		return nil, err
	}

	for i := range movies {
		if err := movies[i].CheckResponse(); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
		}
	}

	return movies, nil
}

// User retrieves a profile via GET /users/{username}.
func (s *FlixService) User(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	var user models.User
	endpoint := "/users/" + url.PathEscape(username)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &user, true); err != nil {
		return nil, err
	}

	if err := user.CheckResponse(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
	}

	return &user, nil
}

// AddFavorite marks a movie as a favorite via POST /users/{username}/movies/{movieId}.
func (s *FlixService) AddFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	if username == "" || movieID == "" {
		return nil, fmt.Errorf("%w: username and movie id", shared.ErrMissingArgument)
	}

	body := struct {
		MovieID string `json:"movie_id"`
	}{MovieID: movieID}

	var user models.User
	endpoint := "/users/" + url.PathEscape(username) + "/movies/" + url.PathEscape(movieID)
	if err := s.doRequest(ctx, http.MethodPost, endpoint, body, &user, true); err != nil {
		return nil, err
	}

	if err := user.CheckResponse(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
	}

	return &user, nil
}

// RemoveFavorite unmarks a favorite via DELETE /users/{username}/movies/{movieId}.
func (s *FlixService) RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	if username == "" || movieID == "" {
		return nil, fmt.Errorf("%w: username and movie id", shared.ErrMissingArgument)
	}

	var user models.User
	endpoint := "/users/" + url.PathEscape(username) + "/movies/" + url.PathEscape(movieID)
	if err := s.doRequest(ctx, http.MethodDelete, endpoint, nil, &user, true); err != nil {
		return nil, err
	}

	if err := user.CheckResponse(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
	}

	return &user, nil
}

// UpdateUser applies a profile patch via PUT /users/{username}.
func (s *FlixService) UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", shared.ErrInvalidInput)
	}

	var user models.User
	endpoint := "/users/" + url.PathEscape(username)
	if err := s.doRequest(ctx, http.MethodPut, endpoint, patch, &user, true); err != nil {
		return nil, err
	}

	if err := user.CheckResponse(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedResponse, err)
	}

	return &user, nil
}

// DeleteUser deletes the account via DELETE /users/{username}.
//
// The server confirms deletion with a plain-text body containing
// "was deleted". Anything else surfaces as [shared.ErrUnexpectedResponse]
// so callers never clear local state on an unconfirmed delete.
func (s *FlixService) DeleteUser(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}
	if s.authClient == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := "/users/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.authClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %v", shared.ErrNetwork, err)
	}

	if !strings.Contains(string(body), deleteConfirmation) {
		return fmt.Errorf("%w: deletion not confirmed: %q", shared.ErrUnexpectedResponse, strings.TrimSpace(string(body)))
	}

	return nil
}
