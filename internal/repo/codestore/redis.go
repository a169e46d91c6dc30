package codestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yamdb/internal/entity"

	"github.com/redis/go-redis/v9"
)

// RedisStore holds confirmation-code hashes in redis so they expire on
// their own and survive service restarts.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(userID string) string {
	return fmt.Sprintf("confirmation_code:%s", userID)
}

func (s *RedisStore) Save(userID, codeHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Set(ctx, key(userID), codeHash, s.ttl).Err()
}

func (s *RedisStore) Get(userID string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	codeHash, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", entity.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return codeHash, nil
}

func (s *RedisStore) Delete(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Del(ctx, key(userID)).Err()
}
