package chat

import "errors"

var (
	// ErrSessionNotFound indicates the session is absent or deleted
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrForbidden indicates the caller doesn't own the session
	ErrForbidden = errors.New("chat session belongs to another owner")

	// ErrBotTypeNotFound indicates an unknown or inactive chatbot type
	ErrBotTypeNotFound = errors.New("chatbot type not found")

	// ErrOwnerRequired indicates neither a user nor a guest id was supplied
	ErrOwnerRequired = errors.New("guest id required for anonymous sessions")

	// ErrInvalidParameter indicates an out-of-range cursor or page size
	ErrInvalidParameter = errors.New("invalid parameter")
)
