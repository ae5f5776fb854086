package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

// Search API quotas per minute.
const (
	SearchRateLimitAuthenticated = 30
	SearchRateLimitAnonymous     = 10
)

// DefaultQueryInterval paces consecutive searches.
const DefaultQueryInterval = 500 * time.Millisecond

// reserve is how many searches are held back before the quota counts as spent.
const reserve = 1

// RateLimiter paces searches with a token bucket and refuses searches once
// the quota GitHub reports is used up.
type RateLimiter struct {
	pace *rate.Limiter

	mu    sync.Mutex
	quota gh.Rate
}

// NewRateLimiter allows one search per interval against a quota of
// limit searches. A non-positive interval disables pacing.
func NewRateLimiter(interval time.Duration, limit int) *RateLimiter {
	every := rate.Inf
	if interval > 0 {
		every = rate.Every(interval)
	}
	return &RateLimiter{
		pace:  rate.NewLimiter(every, 1),
		quota: gh.Rate{Limit: limit, Remaining: limit},
	}
}

// Wait blocks until the next search may be sent. With the quota spent, it
// waits for the reset only when that falls before the context deadline and
// otherwise returns a *RateLimitError at once, so a spent quota never holds
// a pass past its deadline.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.pace.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	q := r.quota
	r.mu.Unlock()

	if q.Remaining >= reserve {
		return nil
	}
	wait := time.Until(q.Reset.Time)
	if wait <= 0 {
		return nil
	}
	deadline, ok := ctx.Deadline()
	if !ok || !q.Reset.Time.Before(deadline) {
		return &RateLimitError{ResetAt: q.Reset.Time, Remaining: q.Remaining, Limit: q.Limit}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Observe records the quota go-github parsed from a response. Responses
// without rate headers carry a zero Limit and are ignored.
func (r *RateLimiter) Observe(q gh.Rate) {
	if q.Limit == 0 {
		return
	}
	r.mu.Lock()
	r.quota = q
	r.mu.Unlock()
}

// Remaining returns the searches left in the current window.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota.Remaining
}

// Limit returns the quota size.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota.Limit
}

// ResetTime returns when the quota window resets. Zero until GitHub reports it.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota.Reset.Time
}
