package community

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wilo/internal/core/community"
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
	case errors.Is(err, community.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden",
			"You can only modify your own posts")

	case errors.Is(err, community.ErrInvalidParent):
		writeError(w, http.StatusBadRequest, "InvalidParent",
			"Parent comment does not belong to this post")

	case errors.Is(err, community.ErrReplyDepthExceeded):
		writeError(w, http.StatusBadRequest, "ReplyDepthExceeded",
			"Replies to replies are not allowed")

	case community.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case community.IsNotFound(err):
		writeError(w, http.StatusNotFound, "NotFound", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in community handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
