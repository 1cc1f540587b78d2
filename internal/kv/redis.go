package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"blog-go/internal/blog"
)

// RedisStore keeps values in Redis. Keys are namespaced as
// "<prefix>:<key>" so several instances can share one server.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore wraps an existing client. The store owns the client and
// closes it on Close.
func NewRedisStore(client *redis.Client, prefix string, timeout time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, timeout: timeout}
}

func (r *RedisStore) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *RedisStore) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// Get retrieves the value stored under key. A missing key is reported
// through ok, not as an error.
func (r *RedisStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := r.context()
	defer cancel()

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get from redis: %w", err)
	}
	return data, true, nil
}

// Set stores value under key without expiry.
func (r *RedisStore) Set(key string, value []byte) error {
	ctx, cancel := r.context()
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

// Delete removes key.
func (r *RedisStore) Delete(key string) error {
	ctx, cancel := r.context()
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// ValidateSetup checks if Redis is available.
func (r *RedisStore) ValidateSetup() error {
	ctx, cancel := r.context()
	defer cancel()
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ blog.KVStore = (*RedisStore)(nil)
