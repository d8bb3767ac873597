package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"party-planner-api/config"
)

// ErrTokenNotFound is returned when a refresh token is unknown, already
// rotated, or expired.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStore manages opaque refresh tokens. Tokens are single-use: every
// refresh rotates the token so a replayed old token fails.
type TokenStore interface {
	Issue(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	Rotate(ctx context.Context, token string, ttl time.Duration) (string, uint, error)
	Revoke(ctx context.Context, token string) error
}

// RedisTokenStore keeps refresh tokens in Redis with a TTL
type RedisTokenStore struct {
	client *redis.Client
}

var tokenStoreInstance TokenStore

// InitTokenStore connects to Redis and installs the refresh-token store
func InitTokenStore(cfg *config.Config) (TokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	tokenStoreInstance = &RedisTokenStore{client: client}
	return tokenStoreInstance, nil
}

// GetTokenStore returns the initialized token store instance
func GetTokenStore() TokenStore {
	return tokenStoreInstance
}

// SetTokenStore sets the token store instance (primarily for testing)
func SetTokenStore(store TokenStore) {
	tokenStoreInstance = store
}

func refreshKey(token string) string {
	return fmt.Sprintf("refresh:%s", token)
}

// Issue creates a new refresh token for the user
func (s *RedisTokenStore) Issue(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, refreshKey(token), userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

// Rotate atomically replaces a refresh token with a fresh one and returns
// the owning user ID
func (s *RedisTokenStore) Rotate(ctx context.Context, token string, ttl time.Duration) (string, uint, error) {
	value, err := s.client.Get(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return "", 0, ErrTokenNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to read refresh token: %w", err)
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("corrupt refresh token value: %w", err)
	}

	next := uuid.NewString()
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, refreshKey(token))
	pipe.Set(ctx, refreshKey(next), userID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", 0, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return next, uint(userID), nil
}

// Revoke deletes a refresh token
func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
