// Package session holds the console's single source of truth for "is this
// client authenticated, and as whom".
//
// A Store is constructed explicitly and injected into every component that
// needs it; there is no package-level session. Its lifecycle is
//
//	NewStore → Restore (read durable storage, no network) → Login/Logout ...
//
// The client counts as authenticated exactly when a token is present; the
// user profile is informational and may be nil even then.
//
// Logout bumps an epoch counter. A login that started before the logout
// (LoginSince with the older epoch) is refused, so a late response can never
// resurrect a cleared session.
package session
