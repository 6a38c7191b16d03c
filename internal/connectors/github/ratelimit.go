package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/reposift/internal/logger"
	"github.com/custodia-labs/reposift/internal/metrics"
)

const (
	// MinBuffer is the remaining-request count at or below which Wait blocks
	// until the reset time.
	MinBuffer = 1

	// ResetGrace is added to the reset time so the first request after a wait
	// lands in the new window.
	ResetGrace = time.Second

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// RateLimiter tracks the search API quota reported in response headers and
// blocks before a call when the quota is exhausted.
//
// State starts unknown (zero), so the first call never waits.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int           // From API header
	limit     int           // From API header
	resetTime time.Time     // From API header
	bucket    *rate.Limiter // Optional proactive throttling
	minBuffer int

	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	metrics *metrics.Recorder
}

// NewRateLimiter creates a rate limiter. A positive requestsPerSecond adds a
// proactive token bucket in front of the reactive header check.
func NewRateLimiter(requestsPerSecond float64, rec *metrics.Recorder) *RateLimiter {
	r := &RateLimiter{
		minBuffer: MinBuffer,
		now:       time.Now,
		sleep:     sleepContext,
		metrics:   rec,
	}
	if requestsPerSecond > 0 {
		r.bucket = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return r
}

// Wait blocks until it's safe to make a request.
// It returns an error only when ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.bucket != nil {
		if err := r.bucket.Wait(ctx); err != nil {
			return err
		}
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	now := r.now()
	if remaining > r.minBuffer || !now.Before(resetTime) {
		return ctx.Err()
	}

	wait := resetTime.Sub(now) + ResetGrace
	logger.Info("Rate limit nearly exhausted (%d remaining), waiting %s", remaining, wait.Round(time.Second))
	r.metrics.ObserveRateLimitWait(wait)
	return r.sleep(ctx, wait)
}

// UpdateFromResponse updates rate limit state from response headers.
// Missing or malformed headers leave the corresponding state unchanged.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// Remaining returns the current remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the rate limit.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
