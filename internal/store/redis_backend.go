package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend persists the snapshot document under a single Redis key.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend constructs a Redis-backed snapshot store.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// Load implements Backend.
func (b *RedisBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save implements Backend.
func (b *RedisBackend) Save(ctx context.Context, data []byte) error {
	return b.client.Set(ctx, SnapshotKey, data, 0).Err()
}
