package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"wilo/internal/core/chat"
)

// BotTypeHandler serves the chatbot catalog
type BotTypeHandler struct {
	service chat.Service
}

// NewBotTypeHandler creates a new bot type handler
func NewBotTypeHandler(service chat.Service) *BotTypeHandler {
	return &BotTypeHandler{service: service}
}

// HandleList handles GET /api/chatbot-types
func (h *BotTypeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListBotTypes(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(types); err != nil {
		log.Printf("Failed to encode bot type response: %v", err)
	}
}
