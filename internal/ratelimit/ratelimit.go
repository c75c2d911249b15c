// Package ratelimit provides per-user, per-feature request throttling.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Decision is the outcome of a rate limit check. When Allowed is false,
// ResetAt tells the caller when the next request would be admitted.
type Decision struct {
	Allowed bool
	ResetAt time.Time
}

// Limiter throttles requests per (user, feature) pair using token buckets.
// Buckets are created on first use and live for the process lifetime; the
// working set is one bucket per active user per feature.
type Limiter struct {
	mu      sync.Mutex
	buckets map[bucketKey]*rate.Limiter
	rates   map[string]rate.Limit
	bursts  map[string]int
}

type bucketKey struct {
	userID  string
	feature string
}

// NewLimiter creates a limiter with no registered features. Unregistered
// features are not throttled.
func NewLimiter() *Limiter {
	return &Limiter{
		buckets: make(map[bucketKey]*rate.Limiter),
		rates:   make(map[string]rate.Limit),
		bursts:  make(map[string]int),
	}
}

// SetFeature registers a feature with a per-minute rate. Burst equals the
// per-minute allowance so a quiet user can submit a short run of requests.
func (l *Limiter) SetFeature(feature string, perMinute int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rates[feature] = rate.Limit(float64(perMinute) / 60.0)
	l.bursts[feature] = perMinute
}

// Check consumes one token for the user and feature if available.
func (l *Limiter) Check(userID, feature string) Decision {
	l.mu.Lock()
	limit, registered := l.rates[feature]
	if !registered {
		l.mu.Unlock()
		return Decision{Allowed: true}
	}

	key := bucketKey{userID: userID, feature: feature}
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(limit, l.bursts[feature])
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	reservation := bucket.Reserve()
	delay := reservation.Delay()
	if delay == 0 {
		return Decision{Allowed: true}
	}

	// Over the limit: give the token back and report when one frees up.
	reservation.Cancel()
	return Decision{Allowed: false, ResetAt: time.Now().Add(delay)}
}
