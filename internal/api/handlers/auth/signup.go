package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/core/auth"
)

// SignUpHandler handles account registration
type SignUpHandler struct {
	service auth.Service
}

// NewSignUpHandler creates a new signup handler
func NewSignUpHandler(service auth.Service) *SignUpHandler {
	return &SignUpHandler{service: service}
}

// HandleSignUp handles POST /api/auth/signup
func (h *SignUpHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req auth.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	result, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode signup response: %v", err)
	}
}
