package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"golang.org/x/sync/singleflight"
)

// Store is a read-through cache over a Backend. Values are JSON encoded so
// the same keys work against memory and redis. Backend failures are logged
// and the loader result is served instead.
//
// Every invalidation bumps a generation counter. A load that started before
// an invalidation is returned to its callers but never written back, and
// callers arriving after the invalidation start a fresh load. An
// invalidation the backend rejects (redis down or breaker open) leaves old
// entries in place until their TTL expires.
type Store struct {
	backend Backend
	ttl     time.Duration
	flight  singleflight.Group
	gen     atomic.Uint64
	logger  *logging.Logger
}

func NewStore(backend Backend, ttl time.Duration, logger *logging.Logger) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		backend: backend,
		ttl:     ttl,
		logger:  logger,
	}
}

// GetOrLoad returns the cached value for key or loads, stores and returns
// it. Concurrent misses for one key share a single loader call. A nil store
// always calls the loader.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	if value, ok := lookup[T](ctx, s, key); ok {
		return value, nil
	}

	gen := s.gen.Load()
	v, err, _ := s.flight.Do(flightKey(key, gen), func() (any, error) {
		if cached, ok := lookup[T](ctx, s, key); ok {
			return cached, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if s.gen.Load() == gen {
			s.store(ctx, key, loaded)
			// An invalidation may have landed between the check and the write.
			if s.gen.Load() != gen {
				s.Invalidate(ctx, key)
			}
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	value, _ := v.(T)
	return value, nil
}

// Invalidate drops the given keys.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if s == nil || len(keys) == 0 {
		return
	}
	s.gen.Add(1)
	if err := s.backend.Delete(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "cache invalidate failed", "keys", keys, "error", err)
	}
}

// InvalidatePrefix drops every key that starts with prefix.
func (s *Store) InvalidatePrefix(ctx context.Context, prefix string) {
	if s == nil || prefix == "" {
		return
	}
	s.gen.Add(1)
	if err := s.backend.DeletePrefix(ctx, prefix); err != nil {
		s.logger.WarnContext(ctx, "cache invalidate prefix failed", "prefix", prefix, "error", err)
	}
}

func flightKey(key string, gen uint64) string {
	return key + "@" + strconv.FormatUint(gen, 10)
}

func lookup[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var value T
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		return value, false
	}
	if !ok {
		return value, false
	}
	if err := sonic.Unmarshal(raw, &value); err != nil {
		s.logger.WarnContext(ctx, "cache decode failed", "key", key, "error", err)
		return value, false
	}
	return value, true
}

func (s *Store) store(ctx context.Context, key string, value any) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.backend.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}
