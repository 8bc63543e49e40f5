// Package cli provides the interactive BNGRC terminal client.
//
// It restores a stored session at start-up, then runs a REPL over the
// domain services. Commands are gated by role: guests may only log in or
// register, members browse rubriques, types and files, and administrators
// also manage the hierarchy and user accounts.
//
// When the API client gives up on a session, App.SessionExpired prints a
// notice and drops the REPL back to the guest state.
package cli
