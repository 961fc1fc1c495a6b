package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated   = fmt.Errorf("not logged in")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrUnauthorized       = fmt.Errorf("unauthorized")

	// API and transport errors
	ErrNetwork            = fmt.Errorf("network failure")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrNotFound           = fmt.Errorf("not found")
	ErrValidation         = fmt.Errorf("validation failed")
	ErrUnexpectedResponse = fmt.Errorf("unexpected response from server")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
