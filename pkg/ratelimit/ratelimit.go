package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Allower decides whether one more hit for key fits in its window
type Allower interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Limiter is an in-memory sliding window limiter
type Limiter struct {
	mu      sync.Mutex
	limits  map[string][]time.Time
	window  time.Duration
	maxHits int
	now     func() time.Time
}

func NewLimiter(window time.Duration, maxHits int) *Limiter {
	return &Limiter{
		limits:  make(map[string][]time.Time),
		window:  window,
		maxHits: maxHits,
		now:     time.Now,
	}
}

func (l *Limiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// Clean old entries
	if hits, exists := l.limits[key]; exists {
		valid := hits[:0]
		for _, hit := range hits {
			if hit.After(windowStart) {
				valid = append(valid, hit)
			}
		}
		if len(valid) == 0 {
			delete(l.limits, key)
		} else {
			l.limits[key] = valid
		}
	}

	if len(l.limits[key]) >= l.maxHits {
		return false, nil
	}

	l.limits[key] = append(l.limits[key], now)
	return true, nil
}

// Counter is a shared store able to count hits in a fixed window
type Counter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// WindowLimiter is a fixed window limiter backed by a shared Counter, so limits
// hold across server instances
type WindowLimiter struct {
	counter Counter
	prefix  string
	window  time.Duration
	maxHits int
}

func NewWindowLimiter(counter Counter, prefix string, window time.Duration, maxHits int) *WindowLimiter {
	return &WindowLimiter{counter: counter, prefix: prefix, window: window, maxHits: maxHits}
}

func (w *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	hits, err := w.counter.IncrWindow(ctx, fmt.Sprintf("ratelimit:%s:%s", w.prefix, key), w.window)
	if err != nil {
		return false, err
	}
	return hits <= int64(w.maxHits), nil
}
