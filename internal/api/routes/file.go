package routes

import (
	"github.com/go-chi/chi/v5"

	fileHandlers "wilo/internal/api/handlers/file"
	"wilo/internal/api/middleware"
	"wilo/internal/core/blobs"
)

// RegisterFileRoutes registers the image upload endpoint.
func RegisterFileRoutes(r chi.Router, blobService blobs.Service, authMiddleware *middleware.AuthMiddleware) {
	uploadHandler := fileHandlers.NewUploadHandler(blobService)
	deleteHandler := fileHandlers.NewDeleteHandler(blobService)

	r.With(authMiddleware.RequireAuth).Post("/api/files/images", uploadHandler.HandleUpload)
	r.With(authMiddleware.RequireAuth).Delete("/api/files/images", deleteHandler.HandleDelete)
}
