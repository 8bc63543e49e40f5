// Package tokenstore keeps the session credentials: the access token, the
// refresh token and the id of the user they belong to.
//
// Absent values are reported as "" with a nil error. Validity is never
// checked locally; only the server decides whether a token is still good.
package tokenstore

import "context"

// Store is the single source of truth for the current session.
type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	UserID(ctx context.Context) (string, error)

	// SetTokens always stores access. refresh is stored only when non-empty,
	// so a renewal that does not rotate the refresh token keeps the old one.
	SetTokens(ctx context.Context, access, refresh string) error
	SetUserID(ctx context.Context, id string) error

	// Clear removes the access token, the refresh token and the user id.
	Clear(ctx context.Context) error
}

// IsAuthenticated reports whether an access token is stored. A read error
// counts as not authenticated.
func IsAuthenticated(ctx context.Context, s Store) bool {
	tok, err := s.AccessToken(ctx)
	return err == nil && tok != ""
}
