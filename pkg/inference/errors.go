package inference

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoAPIKey is returned when the API key is required but missing.
	ErrNoAPIKey = errors.New("inference: API key required")

	// ErrNoProfileID is returned when the profile identifier is missing.
	ErrNoProfileID = errors.New("inference: profile ID required")

	// ErrSessionClosed is returned when submitting work to a closed session.
	ErrSessionClosed = errors.New("inference: session closed")

	// ErrStreamClosed is returned when reading from a closed stream.
	ErrStreamClosed = errors.New("inference: stream closed")

	// ErrEngineUnavailable is returned when no engine is configured.
	ErrEngineUnavailable = errors.New("inference: engine unavailable")
)

// ServiceError represents an error frame returned by the inference service.
type ServiceError struct {
	// Code is the service's error code, if provided.
	Code string

	// Message is the error message from the service.
	Message string

	// Profile identifies which session produced the error.
	Profile string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("inference [%s]: service error (%s): %s", e.Profile, e.Code, e.Message)
	}
	return fmt.Sprintf("inference [%s]: service error: %s", e.Profile, e.Message)
}

// SessionError wraps an error with session context.
type SessionError struct {
	Profile string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return fmt.Sprintf("inference [%s]: %v", e.Profile, e.Err)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with session context.
func WrapError(profile string, err error) error {
	if err == nil {
		return nil
	}
	return &SessionError{Profile: profile, Err: err}
}
