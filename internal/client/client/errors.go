package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthenticated = errors.New("no access token found")
	ErrNoRefreshToken  = errors.New("no refresh token or user id found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidResponse = errors.New("invalid response from server")
)

// AuthError is returned by AuthClient when an operation cannot proceed or the
// server answer is unusable.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err carries an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// wrapTransportError classifies an error returned by http.Client.Do. A failed
// renewal and cancellation keep their identity; anything else means the
// server could not be reached.
func wrapTransportError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && errors.Is(uerr.Err, ErrSessionExpired) {
		return uerr.Err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
