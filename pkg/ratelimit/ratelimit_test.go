package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterSlidingWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewLimiter(time.Minute, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := l.Allow(ctx, "1.2.3.4")
	assert.False(t, ok, "third hit inside the window")

	ok, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "keys are independent")

	now = now.Add(61 * time.Second)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok, "window slid past old hits")
}

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeCounter) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func TestWindowLimiter(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	l := NewWindowLimiter(counter, "generate", time.Minute, 1)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "user_1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int64(2), counter.counts["ratelimit:generate:user_1"])
}

func TestWindowLimiterError(t *testing.T) {
	l := NewWindowLimiter(&fakeCounter{err: errors.New("down")}, "seo", time.Minute, 1)
	_, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
}
