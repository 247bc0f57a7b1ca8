package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the session keys in Redis. Keys never expire; logout
// deletes them.
type RedisStorage struct {
	client *redis.Client
	prefix string
	closed atomic.Bool
}

// RedisOptions configures the Redis storage.
type RedisOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix is prepended to all keys (e.g., "newsdesk:")
	Prefix string

	// ConnectTimeout bounds the initial ping.
	ConnectTimeout time.Duration
}

// NewRedisStorage connects to Redis and verifies the connection.
func NewRedisStorage(ctx context.Context, opts RedisOptions) (*RedisStorage, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStorage{client: client, prefix: opts.Prefix}, nil
}

func (r *RedisStorage) prefixKey(key string) string {
	return r.prefix + key
}

// Get retrieves a value.
func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	if r.closed.Load() {
		return "", ErrClosed
	}
	val, err := r.client.Get(ctx, r.prefixKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Set stores a value without expiration.
func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.Set(ctx, r.prefixKey(key), value, 0).Err()
}

// Delete removes keys.
func (r *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.prefixKey(k)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// Close closes the Redis connection.
func (r *RedisStorage) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.client.Close()
}
