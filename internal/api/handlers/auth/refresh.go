package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/core/auth"
)

// RefreshHandler rotates token pairs
type RefreshHandler struct {
	service auth.Service
}

// NewRefreshHandler creates a new refresh handler
func NewRefreshHandler(service auth.Service) *RefreshHandler {
	return &RefreshHandler{service: service}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// HandleRefresh handles POST /api/auth/refresh
// A successful refresh invalidates the presented token: only the newest
// pair works afterwards.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "refreshToken is required")
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(pair); err != nil {
		log.Printf("Failed to encode refresh response: %v", err)
	}
}
