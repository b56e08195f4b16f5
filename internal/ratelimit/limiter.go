// Package ratelimit caps accepted submissions per client fingerprint
// within a rolling window, independent of content validity. The
// fingerprint is caller-supplied and not authenticated; this is an
// abuse deterrent, not a security boundary.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	DefaultWindow         = 10 * time.Minute
	DefaultMaxSubmissions = 3
)

var ErrMissingFingerprint = errors.New("missing fingerprint")

// Result of a check-and-record call.
type Result struct {
	Allowed    bool
	Remaining  int    // submissions left in the window when allowed
	RetryAfter int    // whole minutes until the window resets, when denied
	Reason     string // human-readable denial reason
}

// Limiter is the check-and-record contract: a single call both
// consults and consumes allowance.
type Limiter interface {
	Check(ctx context.Context, fingerprint string) (*Result, error)
}

type entry struct {
	count       int
	firstSubmit time.Time
}

// MemoryLimiter tracks fingerprints in a process-local map. Counters
// are lost on restart; the Redis backend covers multi-instance and
// durable deployments.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration
	max     int
	now     func() time.Time
}

func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxSubmissions
	}
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// NewMemoryLimiterWithClock is for tests.
func NewMemoryLimiterWithClock(window time.Duration, max int, now func() time.Time) *MemoryLimiter {
	l := NewMemoryLimiter(window, max)
	l.now = now
	return l
}

func (l *MemoryLimiter) Check(_ context.Context, fingerprint string) (*Result, error) {
	if fingerprint == "" {
		return nil, ErrMissingFingerprint
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// Expiry is evaluated lazily on each call; no background sweep.
	for key, e := range l.entries {
		if now.Sub(e.firstSubmit) > l.window {
			delete(l.entries, key)
		}
	}

	e, ok := l.entries[fingerprint]
	if !ok {
		l.entries[fingerprint] = &entry{count: 1, firstSubmit: now}
		return &Result{Allowed: true, Remaining: l.max - 1}, nil
	}

	if e.count >= l.max {
		retryAfter := minutesUntilReset(l.window, now.Sub(e.firstSubmit))
		return &Result{
			Allowed:    false,
			RetryAfter: retryAfter,
			Reason:     fmt.Sprintf("Rate limit exceeded. Please try again in %d minutes.", retryAfter),
		}, nil
	}

	e.count++
	return &Result{Allowed: true, Remaining: l.max - e.count}, nil
}

func minutesUntilReset(window, elapsed time.Duration) int {
	left := window - elapsed
	if left < 0 {
		left = 0
	}
	minutes := int(math.Ceil(left.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
