package file

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/blobs"
)

// DeleteHandler removes a previously uploaded image by its URL, for clients
// cleaning up images dropped from a draft before the post ever existed.
type DeleteHandler struct {
	blobs blobs.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(blobService blobs.Service) *DeleteHandler {
	return &DeleteHandler{blobs: blobService}
}

type deleteRequest struct {
	URL string `json:"url"`
}

// HandleDelete handles DELETE /api/files/images
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r) == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "url is required")
		return
	}

	if err := h.blobs.Delete(r.Context(), req.URL); err != nil {
		switch {
		case errors.Is(err, blobs.ErrNotFound):
			writeError(w, http.StatusNotFound, "NotFound", "No stored image at this URL")
		case errors.Is(err, blobs.ErrInvalidURL):
			writeError(w, http.StatusBadRequest, "InvalidRequest", "URL is outside the image store")
		default:
			log.Printf("Image delete failed: %v", err)
			writeError(w, http.StatusInternalServerError, "DeleteFailed", "Failed to delete image")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
