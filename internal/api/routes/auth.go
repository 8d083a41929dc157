package routes

import (
	"github.com/go-chi/chi/v5"

	authHandlers "wilo/internal/api/handlers/auth"
	"wilo/internal/api/middleware"
	"wilo/internal/core/auth"
)

// RegisterAuthRoutes registers signup/login/logout/refresh endpoints.
func RegisterAuthRoutes(r chi.Router, service auth.Service, authMiddleware *middleware.AuthMiddleware) {
	signUpHandler := authHandlers.NewSignUpHandler(service)
	loginHandler := authHandlers.NewLoginHandler(service)
	logoutHandler := authHandlers.NewLogoutHandler(service)
	refreshHandler := authHandlers.NewRefreshHandler(service)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", signUpHandler.HandleSignUp)
		r.Post("/login", loginHandler.HandleLogin)

		// Refresh authenticates with the refresh token itself, not the
		// (possibly expired) access token
		r.Post("/refresh", refreshHandler.HandleRefresh)

		r.With(authMiddleware.RequireAuth).Post("/logout", logoutHandler.HandleLogout)
	})
}
