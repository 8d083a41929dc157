package routes

import (
	"github.com/go-chi/chi/v5"

	communityHandlers "wilo/internal/api/handlers/community"
	"wilo/internal/api/middleware"
	"wilo/internal/core/community"
)

// RegisterCommunityRoutes registers the community feed and engagement
// endpoints. Reads are public; every mutation requires authentication.
func RegisterCommunityRoutes(r chi.Router, service community.Service, authMiddleware *middleware.AuthMiddleware) {
	listHandler := communityHandlers.NewListPostsHandler(service)
	getHandler := communityHandlers.NewGetPostHandler(service)
	createHandler := communityHandlers.NewCreatePostHandler(service)
	updateHandler := communityHandlers.NewUpdatePostHandler(service)
	deleteHandler := communityHandlers.NewDeletePostHandler(service)
	commentHandler := communityHandlers.NewCreateCommentHandler(service)
	likeHandler := communityHandlers.NewLikeHandler(service)

	r.Route("/api/community/posts", func(r chi.Router) {
		r.Get("/", listHandler.HandleList)
		r.Get("/{postID}", getHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Post("/", createHandler.HandleCreate)
			r.Put("/{postID}", updateHandler.HandleUpdate)
			r.Delete("/{postID}", deleteHandler.HandleDelete)

			r.Post("/{postID}/comments", commentHandler.HandleCreate)

			r.Post("/{postID}/likes", likeHandler.HandleLike)
			r.Delete("/{postID}/likes", likeHandler.HandleUnlike)
		})
	})
}
