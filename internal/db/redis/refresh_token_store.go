// Package redis holds the Redis-backed stores: currently only the
// single-active-refresh-token-per-user store used by the auth service.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"wilo/internal/core/auth"
)

const refreshKeyPrefix = "auth:refresh:"

type refreshTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefreshTokenStore creates a refresh-token store on an existing client.
// ttl should match the refresh token's own lifetime so the key expires with
// the token.
func NewRefreshTokenStore(client *redis.Client, ttl time.Duration) auth.RefreshTokenStore {
	return &refreshTokenStore{client: client, ttl: ttl}
}

// Connect dials Redis from a URL (redis://host:port/db).
func Connect(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (s *refreshTokenStore) Save(ctx context.Context, userID int64, token string) error {
	return s.client.Set(ctx, refreshKey(userID), token, s.ttl).Err()
}

// Get returns the stored token, or empty string when none is stored;
// callers treat "never logged in" and "expired" the same way.
func (s *refreshTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	val, err := s.client.Get(ctx, refreshKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *refreshTokenStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, refreshKey(userID)).Err()
}

func refreshKey(userID int64) string {
	return refreshKeyPrefix + strconv.FormatInt(userID, 10)
}
