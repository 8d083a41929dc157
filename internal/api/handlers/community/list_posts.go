package community

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"wilo/internal/core/community"
)

// ListPostsHandler serves the paginated feed
type ListPostsHandler struct {
	service community.Service
}

// NewListPostsHandler creates a new list handler
func NewListPostsHandler(service community.Service) *ListPostsHandler {
	return &ListPostsHandler{service: service}
}

// HandleList handles GET /api/community/posts
// Query params: category, keyword, cursor, sort (latest|recommended), size.
// A malformed or stale cursor silently restarts from page one.
func (h *ListPostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := community.ListPostsQuery{
		Keyword: strings.TrimSpace(query.Get("keyword")),
	}

	if raw := query.Get("category"); raw != "" {
		category, ok := community.ParseCategory(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "InvalidRequest",
				"invalid category: "+raw)
			return
		}
		q.Category = &category
	}

	sort, ok := community.ParseSortType(query.Get("sort"))
	if !ok {
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			"invalid sort: "+query.Get("sort"))
		return
	}
	q.Sort = sort

	if raw := query.Get("cursor"); raw != "" {
		q.Cursor = &raw
	}

	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest",
				"size must be an integer")
			return
		}
		q.Size = size
	}

	response, err := h.service.ListPosts(r.Context(), q)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode feed response: %v", err)
	}
}
