package chat

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wilo/internal/api/middleware"
	"wilo/internal/core/chat"
)

// SessionHandler serves chat session CRUD for users and guests alike.
// Ownership comes from the access token when present, otherwise from the
// X-Guest-Id header.
type SessionHandler struct {
	service chat.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service chat.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// HandleCreate handles POST /api/chat/sessions
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)

	var req chat.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	session, err := h.service.CreateSession(r.Context(), requestOwner(r), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(session); err != nil {
		log.Printf("Failed to encode session response: %v", err)
	}
}

// HandleList handles GET /api/chat/sessions
// Query params: status (ACTIVE|ENDED), cursor, size. Out-of-range values
// are rejected, not clamped.
func (h *SessionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var status *chat.SessionStatus
	if raw := query.Get("status"); raw != "" {
		s := chat.SessionStatus(raw)
		status = &s
	}

	cursor, size, ok := pageParams(w, query.Get("cursor"), query.Get("size"))
	if !ok {
		return
	}

	page, err := h.service.ListSessions(r.Context(), requestOwner(r), status, cursor, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(page); err != nil {
		log.Printf("Failed to encode session list response: %v", err)
	}
}

// HandleGet handles GET /api/chat/sessions/{sessionID}
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	cursor, size, ok := pageParams(w, r.URL.Query().Get("cursor"), r.URL.Query().Get("size"))
	if !ok {
		return
	}

	detail, err := h.service.GetSessionDetail(r.Context(), sessionID, requestOwner(r), cursor, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(detail); err != nil {
		log.Printf("Failed to encode session detail response: %v", err)
	}
}

// HandleDelete handles DELETE /api/chat/sessions/{sessionID}
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), sessionID, requestOwner(r)); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requestOwner derives the session owner from the request: the
// authenticated user wins over any guest header.
func requestOwner(r *http.Request) chat.Owner {
	if userID := middleware.GetUserIDRef(r); userID != nil {
		return chat.Owner{UserID: userID}
	}
	return chat.Owner{GuestID: middleware.GetGuestID(r)}
}

func sessionIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "sessionID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			"sessionID must be a positive integer")
		return 0, false
	}
	return id, true
}

// pageParams parses optional cursor/size query values. Range checks live
// in the service; this only rejects non-integers.
func pageParams(w http.ResponseWriter, rawCursor, rawSize string) (*int64, *int, bool) {
	var cursor *int64
	if rawCursor != "" {
		v, err := strconv.ParseInt(rawCursor, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest",
				"cursor must be an integer")
			return nil, nil, false
		}
		cursor = &v
	}

	var size *int
	if rawSize != "" {
		v, err := strconv.Atoi(rawSize)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest",
				"size must be an integer")
			return nil, nil, false
		}
		size = &v
	}

	return cursor, size, true
}
