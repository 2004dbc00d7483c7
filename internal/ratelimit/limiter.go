// Package ratelimit throttles API callers with a sliding window kept in
// Redis sorted sets, so limits hold across api replicas.
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "invoice:rl:"

// Decision is the outcome of one limiter check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts events per key inside a sliding window. The zero value, or
// one without a client, allows everything.
type Limiter struct {
	Client *redis.Client
	Window time.Duration
	Max    int
	Prefix string
}

// Allow registers one event for key and reports whether the caller is still
// inside the window limit.
func (l Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.Client == nil || l.Max <= 0 || l.Window <= 0 {
		return Decision{Allowed: true, Limit: l.Max, Remaining: l.Max, ResetAt: time.Now().Add(l.Window)}, nil
	}

	prefix := l.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	now := time.Now()
	cutoff := strconv.FormatInt(now.Add(-l.Window).UnixNano(), 10)
	redisKey := prefix + key

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	current := int(countCmd.Val())
	remaining := l.Max - current
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   current <= l.Max,
		Limit:     l.Max,
		Remaining: remaining,
		ResetAt:   now.Add(l.Window),
	}, nil
}
