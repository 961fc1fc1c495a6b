package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/st-doval17/myflix/internal/shared"
)

// APIService issues raw requests against the myFlix API for debugging and
// scripting. Responses come back as the unparsed body so callers can pipe
// them to jq or a file.
type APIService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIService creates a raw API client. A nil client defaults to
// [http.DefaultClient].
func NewAPIService(baseURL, token string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: client,
	}
}

// Get performs a GET request against the given endpoint and returns the raw
// response body.
func (s *APIService) Get(ctx context.Context, endpoint string) ([]byte, error) {
	return s.do(ctx, http.MethodGet, endpoint, nil)
}

// Post performs a POST request with the given JSON body and returns the raw
// response body.
func (s *APIService) Post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	return s.do(ctx, http.MethodPost, endpoint, body)
}

func (s *APIService) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	var reqBody io.Reader
	if body != nil {
		if err := shared.ValidateJSON(body); err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", shared.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return data, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return data, nil
}
