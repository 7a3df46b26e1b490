package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenNotFound reports an unknown, expired or already consumed token.
var ErrResetTokenNotFound = errors.New("reset token not found")

// ResetTokenStore persists single-use password reset tokens. Tokens
// expire on their own through the store's TTL.
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

type redisResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore returns a Redis-backed implementation.
func NewResetTokenStore(client *redis.Client) ResetTokenStore {
	return &redisResetTokenStore{client: client}
}

const resetTokenPrefix = "password_reset:"

func (s *redisResetTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, resetTokenPrefix+token, userID, ttl).Err()
}

// Consume atomically fetches and deletes the token so it cannot be replayed.
func (s *redisResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, resetTokenPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrResetTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
