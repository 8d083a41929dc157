package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wilo/internal/core/chat"
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
	case errors.Is(err, chat.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "SessionNotFound",
			"Chat session not found")

	case errors.Is(err, chat.ErrBotTypeNotFound):
		writeError(w, http.StatusNotFound, "BotTypeNotFound",
			"Chatbot type not found")

	case errors.Is(err, chat.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden",
			"This session belongs to another owner")

	case errors.Is(err, chat.ErrOwnerRequired):
		writeError(w, http.StatusUnauthorized, "OwnerRequired",
			"Log in or supply an X-Guest-Id header")

	case errors.Is(err, chat.ErrInvalidParameter):
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			"cursor or size is out of range")

	default:
		log.Printf("Unexpected error in chat handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
