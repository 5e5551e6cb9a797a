// Package cache is a read-through JSON cache over Redis with singleflight
// collapsing of concurrent misses. A nil client disables caching.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = time.Hour

type ReadThrough struct {
	rdb    *redis.Client
	sf     singleflight.Group
	ttl    time.Duration
	logger *zap.Logger
}

func NewReadThrough(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *ReadThrough {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadThrough{rdb: rdb, ttl: ttl, logger: logger.Named("cache")}
}

// Invalidate drops key. Failures are logged, never returned.
func (r *ReadThrough) Invalidate(ctx context.Context, key string) {
	if r == nil || r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}

// Get returns the cached value for key, or runs load once across concurrent
// callers and stores its result. Redis errors degrade to calling load.
func Get[T any](ctx context.Context, r *ReadThrough, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if r == nil {
		return load(ctx)
	}

	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, key).Result(); err == nil {
			var v T
			if json.Unmarshal([]byte(cached), &v) == nil {
				return v, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := r.sf.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if r.rdb != nil {
			if data, err := json.Marshal(loaded); err == nil {
				if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
					r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
