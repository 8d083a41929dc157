package auth

import "context"

// Service defines credential issuance: the identity side the community core
// consumes only through the request-boundary middleware.
type Service interface {
	// SignUp registers an account and issues a token pair.
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error)

	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)

	// Logout revokes the user's stored refresh token.
	Logout(ctx context.Context, userID int64) error

	// Refresh rotates the token pair given a valid, currently-stored
	// refresh token.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// RefreshTokenStore holds the single active refresh token per user with a
// TTL matching the token's lifetime.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID int64, token string) error
	Get(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
}
