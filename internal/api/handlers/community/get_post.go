package community

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wilo/internal/core/community"
)

// GetPostHandler serves the post detail view
type GetPostHandler struct {
	service community.Service
}

// NewGetPostHandler creates a new detail handler
func NewGetPostHandler(service community.Service) *GetPostHandler {
	return &GetPostHandler{service: service}
}

// HandleGet handles GET /api/community/posts/{postID}
// Every fetch counts as a view, including repeats by the same reader.
func (h *GetPostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetPostDetail(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(detail); err != nil {
		log.Printf("Failed to encode post detail response: %v", err)
	}
}

// postIDParam parses the {postID} path segment, writing a 400 on failure.
func postIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "postID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			"postID must be a positive integer")
		return 0, false
	}
	return id, true
}
