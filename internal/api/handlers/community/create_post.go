package community

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/community"
)

// CreatePostHandler handles post creation requests
type CreatePostHandler struct {
	service community.Service
}

// NewCreatePostHandler creates a new create handler
func NewCreatePostHandler(service community.Service) *CreatePostHandler {
	return &CreatePostHandler{service: service}
}

// HandleCreate handles POST /api/community/posts
func (h *CreatePostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// Limit request body size; text plus a handful of image URLs fits
	// comfortably in 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var req community.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large (max 1MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	postID, err := h.service.CreatePost(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]int64{"postId": postID}); err != nil {
		log.Printf("Failed to encode post creation response: %v", err)
	}
}
