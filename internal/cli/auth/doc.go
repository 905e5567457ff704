// Package auth manages the admin credential of a session.
//
// Authenticate prompts for the admin password until the service accepts it
// or the user presses Escape, which continues as guest. The returned token
// is attached to the session and replaces any earlier one. There is no
// refresh: an expired token shows up as a rejected call.
package auth
