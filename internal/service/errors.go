package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/worktracker/internal/domain"
)

// Service errors. The API layer maps these to HTTP status codes with errors.Is:
// NotFound → 404, DuplicateEmail → 409, AssigneeNotFound → 400, Integrity → 409.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

	// ErrDuplicateEmail indicates another user already has the email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAssigneeNotFound indicates a task's assignee_id does not reference a user.
	ErrAssigneeNotFound = errors.New("assignee does not exist")

	// ErrIntegrity indicates the store rejected a write for a constraint
	// violation the service has no more specific error for.
	ErrIntegrity = errors.New("integrity violation")
)

// errValueTooLong reports a value the store refused for its length. It is a
// domain validation error so the API answers 400.
var errValueTooLong = domain.NewValidationError("input", "exceeds the maximum length", domain.ErrTooLong)

// ServiceError records which operation failed and why. It unwraps to the
// sentinel (or underlying) error so callers can match with errors.Is.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
