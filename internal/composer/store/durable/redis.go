// Package durable holds the second-tier cache backends.
package durable

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"birl/internal/composer/models"
	"birl/pkg/platform/sentinel"
)

const defaultKeyPrefix = "birl:"

// Redis stores entries in Redis without expiry. Entries are content
// addressed, so overwriting a key always writes the same bytes.
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisOption configures a Redis tier.
type RedisOption func(*Redis)

// WithKeyPrefix namespaces every key.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis creates a Redis-backed durable tier. The client lifecycle is
// managed by the caller.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Get returns the entry for key or sentinel.ErrNotFound.
func (r *Redis) Get(ctx context.Context, key models.EntryKey) ([]byte, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get %s: %w", sentinel.ErrUnavailable, key, err)
	}
	return data, nil
}

// Put writes the entry with no TTL.
func (r *Redis) Put(ctx context.Context, key models.EntryKey, data []byte) error {
	if err := r.client.Set(ctx, r.redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %w", sentinel.ErrUnavailable, key, err)
	}
	return nil
}

func (r *Redis) redisKey(key models.EntryKey) string {
	return r.prefix + key.String()
}
