package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/core/auth"
)

// LoginHandler handles credential login
type LoginHandler struct {
	service auth.Service
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service auth.Service) *LoginHandler {
	return &LoginHandler{service: service}
}

// HandleLogin handles POST /api/auth/login
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)

	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
}
