package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wilo/internal/core/auth"
	"wilo/internal/core/users"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		// One message for both unknown-email and wrong-password so the
		// endpoint cannot be used to probe which emails are registered
		writeError(w, http.StatusUnauthorized, "InvalidCredentials",
			"Invalid email or password")

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrRefreshTokenMismatch):
		writeError(w, http.StatusUnauthorized, "InvalidToken",
			"Refresh token is invalid or expired")

	case errors.Is(err, users.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EmailTaken",
			"An account with this email already exists")

	case errors.Is(err, users.ErrNicknameTaken):
		writeError(w, http.StatusConflict, "NicknameTaken",
			"This nickname is already in use")

	case users.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		log.Printf("Unexpected error in auth handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
