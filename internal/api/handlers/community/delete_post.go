package community

import (
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/community"
)

// DeletePostHandler handles post deletion requests
type DeletePostHandler struct {
	service community.Service
}

// NewDeletePostHandler creates a new delete handler
func NewDeletePostHandler(service community.Service) *DeletePostHandler {
	return &DeletePostHandler{service: service}
}

// HandleDelete handles DELETE /api/community/posts/{postID}
// Only post authors can delete their own posts.
func (h *DeletePostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.DeletePost(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
