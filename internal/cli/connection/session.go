package connection

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yndnr/kvcli/internal/core/domain"
)

// Session is the single connection to the service for one run. It owns
// the HTTP client and at most one admin credential.
//
// A Session is used from one goroutine; it is not safe for concurrent use.
type Session struct {
	client     *HTTPClient
	credential domain.Credential
}

// NewSession creates a session without a credential.
func NewSession(client *HTTPClient) *Session {
	return &Session{client: client}
}

// Attach replaces the attached credential.
func (s *Session) Attach(cred domain.Credential) {
	s.credential = cred
}

// Detach drops the attached credential.
func (s *Session) Detach() {
	s.credential = domain.Credential{}
}

// Credential returns the attached credential.
func (s *Session) Credential() (domain.Credential, bool) {
	return s.credential, !s.credential.IsZero()
}

// BaseURL returns the service base URL.
func (s *Session) BaseURL() string {
	return s.client.BaseURL()
}

// Close releases the underlying connections.
func (s *Session) Close() {
	s.client.Close()
}

// Do sends r with the attached credential, if any.
func (s *Session) Do(ctx context.Context, r Request) (*Response, error) {
	r.Authorization = s.credential.AuthorizationHeader()
	return s.client.Do(ctx, r)
}

// Get performs a GET request.
func (s *Session) Get(ctx context.Context, path, route string) (*Response, error) {
	return s.Do(ctx, Request{Method: http.MethodGet, Path: path, Route: route})
}

// Post performs a POST request with a JSON body.
func (s *Session) Post(ctx context.Context, path string, body any) (*Response, error) {
	return s.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (s *Session) Delete(ctx context.Context, path, route string) (*Response, error) {
	return s.Do(ctx, Request{Method: http.MethodDelete, Path: path, Route: route})
}

// RecordPath returns the path of a single record with key escaped.
func RecordPath(key string) string {
	return RecordsPath + "/" + url.PathEscape(key)
}

// Service paths.
const (
	RecordsPath    = "/api/data"
	RecordRoute    = "/api/data/{key}"
	LoginPath      = "/api/auth/login"
	CheckAdminPath = "/api/auth/check-admin"
	MetaPath       = "/api/meta"
)
