// Package common contains constants and small helpers shared by the console
// packages.
package common

// Header names used on every outbound API call.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Durable storage keys of the session.
const (
	TokenStorageKey = "soc_token"
	UserStorageKey  = "soc_user"
)
