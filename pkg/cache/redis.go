package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errs "github.com/matzehuels/graphalign/pkg/errors"
)

// DefaultRedisNamespace prefixes every key written by [RedisCache].
const DefaultRedisNamespace = "graphalign:"

// RedisConfig configures a [RedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Namespace is prepended to every key so that Clear only touches
	// graphalign entries. Empty selects DefaultRedisNamespace.
	Namespace string
}

// RedisCache stores entries in Redis. Transient network failures are retried
// with backoff.
type RedisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	c := NewRedisCacheFromClient(client, cfg.Namespace)

	err := RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return networkError("ping", err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership and closes the client in Close.
func NewRedisCacheFromClient(client *redis.Client, namespace string) *RedisCache {
	if namespace == "" {
		namespace = DefaultRedisNamespace
	}
	return &RedisCache{client: client, namespace: namespace}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data []byte
		hit  bool
	)
	err := RetryWithBackoff(ctx, func() error {
		v, err := c.client.Get(ctx, c.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return networkError("get", err)
		}
		data, hit = v, true
		return nil
	})
	return data, hit, err
}

// Set stores a value in Redis.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	// go-redis reads negative expirations as KEEPTTL.
	ttl = max(ttl, 0)
	return RetryWithBackoff(ctx, func() error {
		if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
			return networkError("set", err)
		}
		return nil
	})
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
			return networkError("del", err)
		}
		return nil
	})
}

// Clear deletes every key in the cache namespace.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.namespace+"*", 500).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 500 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return networkError("del", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return networkError("scan", err)
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return networkError("del", err)
		}
	}
	return nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(key string) string {
	return c.namespace + key
}

// networkError classifies a Redis failure. Context errors are final; all
// other failures are retried.
func networkError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(errs.Wrap(errs.ErrCodeNetwork, fmt.Errorf("%w: %w", ErrNetwork, err), "redis %s", op))
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
