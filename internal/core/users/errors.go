package users

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound indicates the requested account doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates the email is already registered
	ErrEmailTaken = errors.New("email already in use")

	// ErrNicknameTaken indicates the nickname is already registered
	ErrNicknameTaken = errors.New("nickname already in use")
)

// ValidationError represents an invalid parameter with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
