package routes

import (
	"github.com/go-chi/chi/v5"

	userHandlers "wilo/internal/api/handlers/user"
	"wilo/internal/api/middleware"
	"wilo/internal/core/blobs"
	"wilo/internal/core/users"
)

// RegisterUserRoutes registers the self-profile endpoints.
func RegisterUserRoutes(r chi.Router, service users.Service, blobService blobs.Service, authMiddleware *middleware.AuthMiddleware) {
	getHandler := userHandlers.NewGetProfileHandler(service)
	updateHandler := userHandlers.NewUpdateProfileHandler(service)
	imageHandler := userHandlers.NewUpdateProfileImageHandler(service, blobService)

	r.Route("/api/users/me", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", getHandler.HandleGet)
		r.Patch("/", updateHandler.HandleUpdate)
		r.Post("/profile-image", imageHandler.HandleUpdate)
	})
}
