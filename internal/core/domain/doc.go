// Package domain defines the core domain models for kvcli.
//
// Domain models are plain value objects without IO dependencies:
//
//   - Record: key/value pair owned by the remote service
//   - Credential: admin bearer token plus its decoded claims
//   - Errors: domain-specific error definitions
//
// The client never persists records; it holds transient copies for
// display and confirmation only.
package domain
