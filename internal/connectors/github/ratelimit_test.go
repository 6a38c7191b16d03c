package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a limiter whose clock is fixed at now and whose sleeps
// are recorded instead of performed.
func fakeClock(rl *RateLimiter, now time.Time) *[]time.Duration {
	var slept []time.Duration
	rl.now = func() time.Time { return now }
	rl.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return &slept
}

func rateHeaders(remaining, limit int, reset time.Time) *http.Response {
	h := http.Header{}
	h.Set(HeaderRateRemaining, strconv.Itoa(remaining))
	h.Set(HeaderRateLimit, strconv.Itoa(limit))
	h.Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	return &http.Response{Header: h}
}

func TestRateLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	t.Run("starts unknown and does not wait", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		slept := fakeClock(rl, now)

		require.NoError(t, rl.Wait(context.Background()))

		assert.Equal(t, 0, rl.Remaining())
		assert.True(t, rl.ResetTime().IsZero())
		assert.Empty(t, *slept)
	})

	t.Run("updates from response headers", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		reset := now.Add(time.Minute)

		rl.UpdateFromResponse(rateHeaders(25, 30, reset))

		assert.Equal(t, 25, rl.Remaining())
		assert.Equal(t, 30, rl.Limit())
		assert.Equal(t, reset, rl.ResetTime())
	})

	t.Run("missing headers leave state unchanged", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		reset := now.Add(time.Minute)
		rl.UpdateFromResponse(rateHeaders(7, 30, reset))

		rl.UpdateFromResponse(&http.Response{Header: http.Header{}})
		rl.UpdateFromResponse(nil)

		assert.Equal(t, 7, rl.Remaining())
		assert.Equal(t, 30, rl.Limit())
		assert.Equal(t, reset, rl.ResetTime())
	})

	t.Run("malformed headers are ignored", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		rl.UpdateFromResponse(rateHeaders(7, 30, now))

		h := http.Header{}
		h.Set(HeaderRateRemaining, "lots")
		h.Set(HeaderRateReset, "soon")
		rl.UpdateFromResponse(&http.Response{Header: h})

		assert.Equal(t, 7, rl.Remaining())
		assert.Equal(t, now, rl.ResetTime())
	})

	t.Run("waits until one second past reset when exhausted", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		slept := fakeClock(rl, now)
		rl.UpdateFromResponse(rateHeaders(1, 30, now.Add(60*time.Second)))

		require.NoError(t, rl.Wait(context.Background()))

		require.Len(t, *slept, 1)
		assert.Equal(t, 61*time.Second, (*slept)[0])
	})

	t.Run("does not wait above the buffer", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		slept := fakeClock(rl, now)
		rl.UpdateFromResponse(rateHeaders(2, 30, now.Add(60*time.Second)))

		require.NoError(t, rl.Wait(context.Background()))

		assert.Empty(t, *slept)
	})

	t.Run("does not wait once the reset has passed", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		slept := fakeClock(rl, now)
		rl.UpdateFromResponse(rateHeaders(0, 30, now.Add(-time.Second)))

		require.NoError(t, rl.Wait(context.Background()))

		assert.Empty(t, *slept)
	})

	t.Run("wait respects context cancellation", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		rl.UpdateFromResponse(rateHeaders(0, 30, time.Now().Add(time.Hour)))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := rl.Wait(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("proactive bucket respects context cancellation", func(t *testing.T) {
		rl := NewRateLimiter(0.001, nil)
		require.NotNil(t, rl.bucket)
		require.NoError(t, rl.Wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, rl.Wait(ctx))
	})

	t.Run("bucket disabled by default", func(t *testing.T) {
		assert.Nil(t, NewRateLimiter(0, nil).bucket)
	})
}
