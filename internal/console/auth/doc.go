// Package auth drives login and password recovery.
//
// Controller.Login turns a signin call into a session; it never returns an
// error, only whether the client is now authenticated. ResetFlow is the
// forgotten-password dialog: one value per step, each holding exactly the
// data valid at that step.
package auth
