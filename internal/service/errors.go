// Package service provides application-level services for managing tasks,
// notifications, users, and analytics.
package service

import (
	"errors"
	"fmt"

	"github.com/rcooper/taskflow-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrPermissionDenied indicates the caller is not allowed to perform the
	// operation on the resource. API layer should map this to HTTP 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTaskNotFound indicates that the task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotificationNotFound indicates that the notification does not exist
	// or is not visible to the caller.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrUsernameTaken indicates the requested username is already in use.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrEmailTaken indicates the requested email is already in use.
	ErrEmailTaken = errors.New("email is already in use")
)

// ServiceError wraps errors from the service layer with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "assign_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Known sentinel errors are returned directly without wrapping so that
// callers can match them with errors.Is.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Service-defined sentinel errors pass through unchanged
	for _, sentinel := range []error{
		ErrPermissionDenied,
		ErrTaskNotFound,
		ErrUserNotFound,
		ErrNotificationNotFound,
		ErrUsernameTaken,
		ErrEmailTaken,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	// Store-level sentinel errors map to their service-level equivalents
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrNotificationNotFound):
		return ErrNotificationNotFound
	case errors.Is(err, store.ErrUsernameExists):
		return ErrUsernameTaken
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailTaken
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
