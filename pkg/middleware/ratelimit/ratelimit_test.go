package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("203.0.113.7"), "request %d", i)
	}
	assert.False(t, l.Allow("203.0.113.7"))

	assert.True(t, l.Allow("198.51.100.1"))
}

func TestLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, 1, WithIdleTTL(time.Minute), WithClock(func() time.Time { return now }))

	for i := 0; i < sweepThreshold; i++ {
		l.Allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	assert.Equal(t, sweepThreshold, l.len())

	now = now.Add(2 * time.Minute)
	l.Allow("192.0.2.1")

	assert.Equal(t, 1, l.len())
}

func TestLimiter_Middleware(t *testing.T) {
	l := New(1, 2)

	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	h := l.Middleware(limited)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.7:5000"))
	assert.Equal(t, http.StatusOK, do("203.0.113.7:5001"))
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.7:5002"))

	assert.Equal(t, http.StatusOK, do("198.51.100.1"))
}
