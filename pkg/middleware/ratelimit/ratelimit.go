// Package ratelimit throttles requests per client IP with token buckets.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/juju/ratelimit"
	"github.com/vadimbarashkov/ngo-site/pkg/middleware"
)

const (
	defaultIdleTTL = 10 * time.Minute
	sweepThreshold = 1024
)

type entry struct {
	bucket   *ratelimit.Bucket
	lastSeen time.Time
}

// Limiter keeps one token bucket per key. Buckets idle for longer than the idle TTL are
// dropped once the number of tracked keys grows past sweepThreshold.
type Limiter struct {
	rate     float64
	capacity int64
	idleTTL  time.Duration
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*entry
}

type Option func(*Limiter)

func WithIdleTTL(d time.Duration) Option {
	return func(l *Limiter) {
		l.idleTTL = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New returns a Limiter refilling rate tokens per second up to capacity.
func New(rate float64, capacity int64, opts ...Option) *Limiter {
	l := &Limiter{
		rate:     rate,
		capacity: capacity,
		idleTTL:  defaultIdleTTL,
		now:      time.Now,
		buckets:  make(map[string]*entry),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Allow takes a token from key's bucket and reports whether one was available.
func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).TakeAvailable(1) > 0
}

func (l *Limiter) bucket(key string) *ratelimit.Bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if e, ok := l.buckets[key]; ok {
		e.lastSeen = now
		return e.bucket
	}

	if len(l.buckets) >= sweepThreshold {
		for k, e := range l.buckets {
			if now.Sub(e.lastSeen) > l.idleTTL {
				delete(l.buckets, k)
			}
		}
	}

	e := &entry{
		bucket:   ratelimit.NewBucketWithRate(l.rate, l.capacity),
		lastSeen: now,
	}
	l.buckets[key] = e

	return e.bucket
}

func (l *Limiter) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Middleware limits requests by client IP and serves onLimit when the bucket is empty.
// It expects RemoteAddr to already hold the real client address (chi's RealIP).
func (l *Limiter) Middleware(onLimit http.Handler) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				onLimit.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
