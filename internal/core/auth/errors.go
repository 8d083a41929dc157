package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken indicates a malformed, expired or wrong-kind token
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrRefreshTokenMismatch indicates the presented refresh token is not
	// the one currently stored for the user (revoked or rotated away)
	ErrRefreshTokenMismatch = errors.New("refresh token no longer valid")
)
