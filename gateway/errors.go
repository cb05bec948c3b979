package gateway

import (
	"errors"
	"fmt"
)

// Configuration errors returned by NewClient.
var (
	ErrMissingCredential = errors.New("gateway: credential must not be empty")
	ErrMissingBaseURL    = errors.New("gateway: base URL must not be empty")
)

// APIError is a well-formed HTTP response carrying a non-success status.
// It is an ordinary call outcome, not a transport failure: callers match
// it with errors.As and decide themselves whether to back off or change
// their input.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: HTTP %d: %s", e.StatusCode, e.Message)
}

// DecodeError reports a success response whose body did not match the
// expected JSON shape.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gateway: decoding response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
