// Package domain defines the core domain models for kvcli.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes follow the KV-<AREA>-<STATUS><SEQ> layout.
type DomainError struct {
	Code    string // Error code (e.g., "KV-REC-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Record Errors (REC)
// ============================================================================

var (
	// ErrInvalidKey indicates the record key is blank or too long.
	ErrInvalidKey = NewDomainError("KV-REC-4000", "invalid key")

	// ErrInvalidValue indicates the record value is not an integer.
	ErrInvalidValue = NewDomainError("KV-REC-4001", "value must be an integer")

	// ErrRecordNotFound indicates no record exists for the key.
	ErrRecordNotFound = NewDomainError("KV-REC-4040", "key not found")

	// ErrKeyInUse indicates a record with the same key already exists.
	ErrKeyInUse = NewDomainError("KV-REC-4090", "key is already in use")
)

// ============================================================================
// Store Errors (STORE)
// ============================================================================

var (
	// ErrStoreEmpty is how the service answers a listing when it holds no records.
	// The service reuses 409 for this, so it is only meaningful on the list endpoint.
	ErrStoreEmpty = NewDomainError("KV-STORE-4090", "store is empty")
)

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrInvalidPassword indicates the login exchange was rejected.
	ErrInvalidPassword = NewDomainError("KV-AUTH-4010", "invalid password")

	// ErrNotAuthorized indicates the privileged probe was rejected.
	ErrNotAuthorized = NewDomainError("KV-AUTH-4030", "not authorized")

	// ErrMissingToken indicates a successful login response carried no token.
	ErrMissingToken = NewDomainError("KV-AUTH-5020", "login response carried no token")
)
