package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepo is a Repo backed by Redis, for headless clients that share a
// session across processes. A non-zero TTL makes entries transient, which
// suits the redirect stash; a zero TTL keeps them until deleted.
type RedisRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRepo creates a Redis-backed repository. All keys are namespaced
// under prefix.
func NewRedisRepo(client *redis.Client, prefix string, ttl time.Duration) *RedisRepo {
	return &RedisRepo{client: client, prefix: prefix, ttl: ttl}
}

// Get retrieves the value stored under key.
func (r *RedisRepo) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return value, nil
}

// Set stores value under key with the repository's TTL.
func (r *RedisRepo) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *RedisRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisRepo) key(key string) string {
	return r.prefix + ":" + key
}
