package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store shared between instances. Values are JSON encoded under
// prefix+key.
type Redis[T any] struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedis[T any](client *redis.Client, prefix string) *Redis[T] {
	return &Redis[T]{client: client, prefix: prefix}
}

func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "redis cache get failed", "key", r.prefix+key, "error", err)
		}
		return zero, false
	}

	var value T
	if err := json.Unmarshal(b, &value); err != nil {
		slog.WarnContext(ctx, "redis cache decode failed", "key", r.prefix+key, "error", err)
		return zero, false
	}
	return value, true
}

func (r *Redis[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		slog.WarnContext(ctx, "redis cache encode failed", "key", r.prefix+key, "error", err)
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, b, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "redis cache set failed", "key", r.prefix+key, "error", err)
	}
}

func (r *Redis[T]) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		slog.WarnContext(ctx, "redis cache delete failed", "key", r.prefix+key, "error", err)
	}
}
