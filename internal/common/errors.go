package common

import "errors"

var (
	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrEmptyToken is reported when a session is created without a credential.
	ErrEmptyToken = errors.New("empty token")
)
