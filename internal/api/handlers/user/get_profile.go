package user

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/users"
)

// GetProfileHandler serves the caller's own profile
type GetProfileHandler struct {
	service users.Service
}

// NewGetProfileHandler creates a new profile handler
func NewGetProfileHandler(service users.Service) *GetProfileHandler {
	return &GetProfileHandler{service: service}
}

// HandleGet handles GET /api/users/me
func (h *GetProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		log.Printf("Failed to encode profile response: %v", err)
	}
}
