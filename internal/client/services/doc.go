// Package services contains the application services of the BNGRC client.
// They are thin typed wrappers over client.APIClient and client.AuthClient:
// they build requests, unwrap the answers and pass errors through untouched.
package services
