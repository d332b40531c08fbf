// Package http is the HTTP client shared by remote caption feeds and
// webhook-style delivery targets.
package http

import (
	"errors"
	"fmt"
)

// Sentinel errors returned through APIError.Unwrap.
var (
	// ErrNotFound indicates the endpoint or feed does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates invalid or missing credentials.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the credentials lack permission.
	ErrForbidden = errors.New("permission denied")

	// ErrRateLimited indicates the endpoint is throttling requests.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrBadRequest indicates the endpoint rejected the payload.
	ErrBadRequest = errors.New("bad request")

	// ErrServerError indicates a server-side failure.
	ErrServerError = errors.New("server error")
)

// APIError is a non-2xx response from a remote endpoint.
type APIError struct {
	// Service names the remote, e.g. "caption-feed" or "slack".
	Service string

	StatusCode int
	Message    string
	Endpoint   string

	// RequestID is copied from X-Request-Id when present.
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s API error (%d) at %s [%s]: %s",
			e.Service, e.StatusCode, e.Endpoint, e.RequestID, e.Message)
	}
	return fmt.Sprintf("%s API error (%d) at %s: %s",
		e.Service, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap maps the status code to a sentinel.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err wraps ErrUnauthorized or ErrForbidden.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsRetryable reports whether the failure is transient.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError)
}
