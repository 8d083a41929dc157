package routes

import (
	"github.com/go-chi/chi/v5"

	chatHandlers "wilo/internal/api/handlers/chat"
	"wilo/internal/api/middleware"
	"wilo/internal/core/chat"
)

// RegisterChatRoutes registers chat session endpoints. Sessions are open
// to guests, so auth is optional and ownership falls back to the
// X-Guest-Id header.
func RegisterChatRoutes(r chi.Router, service chat.Service, authMiddleware *middleware.AuthMiddleware) {
	sessionHandler := chatHandlers.NewSessionHandler(service)
	botTypeHandler := chatHandlers.NewBotTypeHandler(service)

	r.Route("/api/chat/sessions", func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuth)

		r.Post("/", sessionHandler.HandleCreate)
		r.Get("/", sessionHandler.HandleList)
		r.Get("/{sessionID}", sessionHandler.HandleGet)
		r.Delete("/{sessionID}", sessionHandler.HandleDelete)
	})

	r.Get("/api/chatbot-types", botTypeHandler.HandleList)
}
