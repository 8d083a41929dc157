package auth

import (
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/auth"
)

// LogoutHandler revokes the caller's refresh token
type LogoutHandler struct {
	service auth.Service
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(service auth.Service) *LogoutHandler {
	return &LogoutHandler{service: service}
}

// HandleLogout handles POST /api/auth/logout
// The access token stays valid until expiry; only the refresh token is
// revoked server-side.
func (h *LogoutHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
