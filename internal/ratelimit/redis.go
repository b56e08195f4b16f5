package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter backs the window with an atomic INCR + expiry per
// fingerprint, so the count survives restarts and is shared across
// instances. Fixed-window semantics: the window starts at the first
// submission and the key expires with it.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func NewRedisLimiter(client *redis.Client, window time.Duration, max int) *RedisLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxSubmissions
	}
	return &RedisLimiter{
		client: client,
		window: window,
		max:    max,
	}
}

func (l *RedisLimiter) key(fingerprint string) string {
	return "ratelimit:submission:" + fingerprint
}

func (l *RedisLimiter) Check(ctx context.Context, fingerprint string) (*Result, error) {
	if fingerprint == "" {
		return nil, ErrMissingFingerprint
	}

	key := l.key(fingerprint)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit incr: %w", err)
	}

	if count == 1 {
		// First submission opens the window.
		if err := l.client.PExpire(ctx, key, l.window).Err(); err != nil {
			return nil, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if count > int64(l.max) {
		ttl, err := l.client.PTTL(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("rate limit ttl: %w", err)
		}
		retryAfter := minutesUntilReset(l.window, l.window-ttl)
		return &Result{
			Allowed:    false,
			RetryAfter: retryAfter,
			Reason:     fmt.Sprintf("Rate limit exceeded. Please try again in %d minutes.", retryAfter),
		}, nil
	}

	return &Result{Allowed: true, Remaining: l.max - int(count)}, nil
}
