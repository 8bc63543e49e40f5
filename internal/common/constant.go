// Package common contains shared constants used across the BNGRC client
// packages.
package common

// Header names and schemes used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	BearerScheme            = "Bearer"
	RequestIDHeaderName     = "X-Request-ID"
)

// Keys under which the session is persisted. They match the keys the web
// portal kept in local storage so an exported session stays readable.
const (
	AccessTokenKey  = "bngrc_access_token"
	RefreshTokenKey = "bngrc_refresh_token"
	UserIDKey       = "bngrc_user_id"
)
