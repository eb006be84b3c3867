// Package apperrors defines the failure taxonomy shared by the ATM core.
// Every public operation fails with exactly one of these types so the
// presentation layer can decide how to render it.
package apperrors

import "fmt"

// ValidationError means a client-side guard rejected the input before any
// network call was made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// RemoteError means the backend answered with a non-2xx status. Message
// carries the backend-supplied text when the response body had one.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// NetworkError means the request never produced a backend response
// (connection refused, timeout, DNS failure).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SessionAbsentError means an operation that needs an authenticated session
// was attempted without one.
type SessionAbsentError struct{}

func (e *SessionAbsentError) Error() string {
	return "no active session"
}

// UserMessage extracts a message fit for display: the backend's own message
// for remote failures, the guard message for validation failures, and the
// supplied fallback otherwise.
func UserMessage(err error, fallback string) string {
	switch e := err.(type) {
	case *ValidationError:
		return e.Message
	case *RemoteError:
		if e.Message != "" {
			return e.Message
		}
	}
	return fallback
}
