package community

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/community"
)

// LikeHandler handles like and unlike requests. Both directions are
// idempotent: the response reports the resulting state, not whether
// anything changed.
type LikeHandler struct {
	service community.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service community.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleLike handles POST /api/community/posts/{postID}/likes
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, true)
}

// HandleUnlike handles DELETE /api/community/posts/{postID}/likes
func (h *LikeHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, false)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, like bool) {
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var (
		state *community.LikeStateResponse
		err   error
	)
	if like {
		state, err = h.service.LikePost(r.Context(), userID, postID)
	} else {
		state, err = h.service.UnlikePost(r.Context(), userID, postID)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(state); err != nil {
		log.Printf("Failed to encode like state response: %v", err)
	}
}
