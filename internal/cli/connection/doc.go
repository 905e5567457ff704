// Package connection talks to the record service.
//
//   - http.go: HTTP client with per-request timeout, common headers,
//     request IDs and metrics
//   - errors.go: transport and status errors
//   - session.go: the session object owning the client and the single
//     admin credential slot
//   - records.go: the record, login and metadata endpoints
package connection
