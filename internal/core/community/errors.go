package community

import (
	"errors"
	"fmt"
)

// Sentinel errors for engagement operations
var (
	// ErrPostNotFound is returned when a post is absent or soft-deleted
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound is returned when a parent comment doesn't exist
	ErrCommentNotFound = errors.New("comment not found")

	// ErrForbidden is returned when a non-owner attempts to modify a post
	ErrForbidden = errors.New("only the post author may perform this action")

	// ErrInvalidParent is returned when a reply's parent belongs to a different post
	ErrInvalidParent = errors.New("parent comment belongs to a different post")

	// ErrReplyDepthExceeded is returned on an attempt to reply to a reply
	ErrReplyDepthExceeded = errors.New("replies to replies are not allowed")
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

// IsNotFound checks if error is either not-found variant
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrCommentNotFound)
}
