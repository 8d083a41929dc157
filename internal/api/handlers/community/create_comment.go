package community

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/community"
)

// CreateCommentHandler handles comment creation requests
type CreateCommentHandler struct {
	service community.Service
}

// NewCreateCommentHandler creates a new comment handler
func NewCreateCommentHandler(service community.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreate handles POST /api/community/posts/{postID}/comments
// parentCommentId, when set, must name a root comment of the same post.
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req community.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	node, err := h.service.CreateComment(r.Context(), userID, postID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(node); err != nil {
		log.Printf("Failed to encode comment response: %v", err)
	}
}
