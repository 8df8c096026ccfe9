package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/peaks-baseball/internal/platform/resilience"
)

const redisScanBatch = 200

// RedisBackend stores values in redis under a key prefix. Calls are
// rejected while the breaker is open.
type RedisBackend struct {
	client  redis.UniversalClient
	prefix  string
	breaker *resilience.CircuitBreaker
}

func NewRedisBackend(client redis.UniversalClient, keyPrefix string, breaker *resilience.CircuitBreaker) *RedisBackend {
	return &RedisBackend{
		client:  client,
		prefix:  keyPrefix,
		breaker: breaker,
	}
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := b.guard(func() error {
		raw, err := b.client.Get(ctx, b.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		value, found = raw, true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, found, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := b.guard(func() error {
		return b.client.Set(ctx, b.prefix+key, value, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, b.prefix+key)
	}
	err := b.guard(func() error {
		return b.client.Del(ctx, full...).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (b *RedisBackend) DeletePrefix(ctx context.Context, prefix string) error {
	err := b.guard(func() error {
		iter := b.client.Scan(ctx, 0, b.prefix+prefix+"*", redisScanBatch).Iterator()
		batch := make([]string, 0, redisScanBatch)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == redisScanBatch {
				if err := b.client.Del(ctx, batch...).Err(); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(batch) > 0 {
			return b.client.Del(ctx, batch...).Err()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete prefix %s: %w", prefix, err)
	}
	return nil
}

func (b *RedisBackend) guard(fn func() error) error {
	if b.breaker == nil {
		return fn()
	}
	return b.breaker.Execute(fn)
}
