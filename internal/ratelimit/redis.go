package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every instance that talks
// to the same Redis.
type RedisLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int64
	window time.Duration
}

func NewRedisLimiter(
	client redis.UniversalClient,
	prefix string,
	limit int,
	window time.Duration,
) *RedisLimiter {
	trimmed := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if trimmed == "" {
		trimmed = "ironpeak:rate_limit"
	}

	return &RedisLimiter{
		client: client,
		prefix: trimmed,
		limit:  int64(limit),
		window: window,
	}
}

func (r *RedisLimiter) key(subject string) string {
	return fmt.Sprintf("%s:%s", r.prefix, subject)
}

func (r *RedisLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	if r == nil || r.client == nil || r.limit <= 0 || r.window <= 0 {
		return true, nil
	}

	key := r.key(subject)

	// MULTI/EXEC keeps a counter from ever living without a TTL. NX leaves the
	// window opened by the first hit untouched.
	var incr *redis.IntCmd
	if _, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, r.window)
		return nil
	}); err != nil {
		return false, err
	}

	return incr.Val() <= r.limit, nil
}

var _ Limiter = (*RedisLimiter)(nil)
