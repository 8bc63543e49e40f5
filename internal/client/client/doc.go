// Package client talks HTTP to the service territoriale API.
//
// AuthClient covers the authentication endpoints and owns its own
// *http.Client, so renewing a token can never re-enter the token transport.
// APIClient is shared by every domain operation: its transport attaches the
// bearer token, renews it once on a 401 and replays the request, and tears
// the session down when renewal fails.
package client
