package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means the backend rejected the bearer token. Callers
// surface it as "run `momentum login`".
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is an application-level failure: the backend answered, but with
// a non-success status. Message carries the body's message verbatim.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Code, e.Status)
}

// TransportError is a network-level failure: no response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("%s: no response from backend: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }
