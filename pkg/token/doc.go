// Package token decodes bearer tokens returned by the admin login exchange.
//
// The service issues JWTs. The client never verifies them (it does not hold
// the signing key); it only reads the claims for display and audit logging.
// Tokens that are not JWTs are still valid bearer credentials, they simply
// have no claims to show.
package token
