package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"wilo/internal/core/auth"
)

// Context keys for storing caller identity
type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware resolves the caller identity once at the request boundary
// and injects it into the request context. Handlers and services receive
// the user id explicitly and never consult request state themselves.
type AuthMiddleware struct {
	tokens *auth.TokenProvider
}

// NewAuthMiddleware creates the JWT auth middleware.
func NewAuthMiddleware(tokens *auth.TokenProvider) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth ensures the request carries a valid Bearer access token.
// If not, returns 401; otherwise injects the user id into context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.resolve(r)
		if !ok {
			writeAuthError(w, "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the caller identity if a valid token is present but
// lets anonymous requests through. Used on endpoints that serve both
// authenticated users and guests.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := m.resolve(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) resolve(r *http.Request) (int64, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	userID, err := m.tokens.VerifyAccessToken(token)
	if err != nil {
		log.Printf("[AUTH_FAILURE] ip=%s method=%s path=%s error=%v",
			r.RemoteAddr, r.Method, r.URL.Path, err)
		return 0, false
	}

	return userID, true
}

// GetUserID returns the authenticated user id from the request context,
// or 0 when the request is anonymous.
func GetUserID(r *http.Request) int64 {
	if id, ok := r.Context().Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetUserIDRef returns the authenticated user id as a pointer, nil for
// anonymous requests. Used where "user or guest" ownership applies.
func GetUserIDRef(r *http.Request) *int64 {
	if id, ok := r.Context().Value(userIDKey).(int64); ok {
		return &id
	}
	return nil
}

// GetGuestID returns the anonymous session identifier sent by clients
// that have no account yet. Empty when the header is absent.
func GetGuestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Guest-Id"))
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthRequired",
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode auth error response: %v", err)
	}
}
