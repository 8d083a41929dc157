package community

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/community"
)

// UpdatePostHandler handles post edit requests
type UpdatePostHandler struct {
	service community.Service
}

// NewUpdatePostHandler creates a new update handler
func NewUpdatePostHandler(service community.Service) *UpdatePostHandler {
	return &UpdatePostHandler{service: service}
}

// HandleUpdate handles PUT /api/community/posts/{postID}
// The request body fully replaces the post's fields and image list.
func (h *UpdatePostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var req community.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	id, err := h.service.UpdatePost(r.Context(), userID, postID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int64{"postId": id}); err != nil {
		log.Printf("Failed to encode post update response: %v", err)
	}
}
