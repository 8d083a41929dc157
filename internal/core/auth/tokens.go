package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the custom claim, so a refresh token can never be
// replayed as an access token or vice versa.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims are the JWT claims for both token kinds. Subject is the user id.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenProvider issues and verifies HS256-signed access/refresh tokens.
type TokenProvider struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewTokenProvider creates a token provider with the shared signing secret.
func NewTokenProvider(secret []byte, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:          secret,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// RefreshTokenTTL exposes the refresh lifetime for the store's key expiry.
func (p *TokenProvider) RefreshTokenTTL() time.Duration {
	return p.refreshTokenTTL
}

// GenerateAccessToken issues a short-lived access token for the user.
func (p *TokenProvider) GenerateAccessToken(userID int64) (string, error) {
	return p.generate(userID, tokenTypeAccess, p.accessTokenTTL)
}

// GenerateRefreshToken issues a long-lived refresh token for the user.
func (p *TokenProvider) GenerateRefreshToken(userID int64) (string, error) {
	return p.generate(userID, tokenTypeRefresh, p.refreshTokenTTL)
}

func (p *TokenProvider) generate(userID int64, tokenType string, ttl time.Duration) (string, error) {
	if len(p.secret) == 0 {
		return "", errors.New("missing jwt secret")
	}

	now := time.Now().UTC()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// VerifyAccessToken parses an access token and returns the user id.
func (p *TokenProvider) VerifyAccessToken(tokenString string) (int64, error) {
	return p.verify(tokenString, tokenTypeAccess)
}

// VerifyRefreshToken parses a refresh token and returns the user id.
func (p *TokenProvider) VerifyRefreshToken(tokenString string) (int64, error) {
	return p.verify(tokenString, tokenTypeRefresh)
}

func (p *TokenProvider) verify(tokenString, wantType string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.TokenType != wantType {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
