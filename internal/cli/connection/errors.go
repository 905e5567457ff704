package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// TransportKind classifies failures that happen before a status is received.
type TransportKind int

const (
	// KindUnreachable covers DNS failures, refused and reset connections.
	KindUnreachable TransportKind = iota
	// KindTimeout means the per-request ceiling elapsed.
	KindTimeout
	// KindProtocol covers malformed responses.
	KindProtocol
)

// String returns the kind as used in messages and metric labels.
func (k TransportKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindProtocol:
		return "protocol"
	default:
		return "unreachable"
	}
}

// TransportError is returned when a request did not produce a usable response.
type TransportError struct {
	Kind TransportKind
	Op   string
	Err  error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("%s: timed out: %v", e.Op, e.Err)
	case KindProtocol:
		return fmt.Sprintf("%s: bad response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: could not reach server: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response.
type StatusError struct {
	Status int
	// Message is the server's error message when the body carried one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == KindTimeout
}

// IsTransport reports whether err is any transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusOf returns the status code carried by a StatusError, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// classify wraps an error returned by http.Client.Do.
func classify(op string, err error) *TransportError {
	kind := KindUnreachable

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}

	return &TransportError{Kind: kind, Op: op, Err: err}
}
