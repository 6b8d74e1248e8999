// Package router decides which view the console shows for a location.
//
// Guard is a pure function of (path, authenticated). Navigator keeps the
// current location, follows redirects and re-resolves whenever the session
// changes, so a logout immediately moves the user back to the login view.
package router
