package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wilo/internal/api/middleware"
	"wilo/internal/core/blobs"
	"wilo/internal/core/users"
)

// UpdateProfileImageHandler accepts a multipart image upload and points the
// caller's profile at the stored copy.
type UpdateProfileImageHandler struct {
	users users.Service
	blobs blobs.Service
}

// NewUpdateProfileImageHandler creates a new profile image handler
func NewUpdateProfileImageHandler(userService users.Service, blobService blobs.Service) *UpdateProfileImageHandler {
	return &UpdateProfileImageHandler{users: userService, blobs: blobService}
}

// HandleUpdate handles POST /api/users/me/profile-image
// Expects a multipart form with an "image" part.
func (h *UpdateProfileImageHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == 0 {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, blobs.MaxImageSize)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			"multipart field 'image' is required")
		return
	}
	defer file.Close()

	url, err := h.blobs.Upload(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, blobs.ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, "UnsupportedType",
				"only jpg, jpeg, png, gif and webp images are accepted")
			return
		}
		log.Printf("Profile image upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "UploadFailed",
			"Failed to store image")
		return
	}

	profile, err := h.users.UpdateProfileImage(r.Context(), userID, url)
	if err != nil {
		// Roll the orphaned blob back so failed updates don't leak files
		if delErr := h.blobs.Delete(r.Context(), url); delErr != nil {
			log.Printf("Failed to remove orphaned profile image %s: %v", url, delErr)
		}
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		log.Printf("Failed to encode profile response: %v", err)
	}
}
