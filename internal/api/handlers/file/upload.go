package file

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/blobs"
)

// UploadHandler stores post images and hands back their public URLs.
// Clients upload first, then reference the URLs in a post create/update.
type UploadHandler struct {
	blobs blobs.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(blobService blobs.Service) *UploadHandler {
	return &UploadHandler{blobs: blobService}
}

// HandleUpload handles POST /api/files/images
// Expects a multipart form with an "image" part.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r) == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, blobs.MaxImageSize)

	f, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			"multipart field 'image' is required")
		return
	}
	defer f.Close()

	url, err := h.blobs.Upload(r.Context(), header.Filename, f)
	if err != nil {
		if errors.Is(err, blobs.ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, "UnsupportedType",
				"only jpg, jpeg, png, gif and webp images are accepted")
			return
		}
		log.Printf("Image upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "UploadFailed",
			"Failed to store image")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"url": url}); err != nil {
		log.Printf("Failed to encode upload response: %v", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
