package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	blocked map[string]bool
	err     error
}

func newMemCounter() *memCounter {
	return &memCounter{counts: map[string]int64{}, blocked: map[string]bool{}}
}

func (c *memCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memCounter) Blocked(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocked[key], c.err
}

func (c *memCounter) Block(_ context.Context, key string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocked[key] = true
	return nil
}

func postLogin(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimit_BlocksAfterLimit(t *testing.T) {
	counter := newMemCounter()
	h := AuthRateLimit(counter, zap.NewNop())(okHandler)

	for i := 0; i < AuthRateLimitMaxRequests; i++ {
		assert.Equal(t, http.StatusOK, postLogin(h, "203.0.113.5:1000").Code)
	}
	rec := postLogin(h, "203.0.113.5:1000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.True(t, counter.blocked[BlockedKeyPrefix+"203.0.113.5"])

	// stays blocked without counting further attempts
	assert.Equal(t, http.StatusTooManyRequests, postLogin(h, "203.0.113.5:1000").Code)
	assert.Equal(t, int64(AuthRateLimitMaxRequests+1), counter.counts[RateLimitKeyPrefix+"203.0.113.5"])

	// other clients are unaffected
	assert.Equal(t, http.StatusOK, postLogin(h, "203.0.113.6:1000").Code)
}

func TestAuthRateLimit_FailsOpen(t *testing.T) {
	counter := newMemCounter()
	counter.err = errors.New("redis: connection refused")
	h := AuthRateLimit(counter, zap.NewNop())(okHandler)

	for i := 0; i < AuthRateLimitMaxRequests+5; i++ {
		assert.Equal(t, http.StatusOK, postLogin(h, "203.0.113.5:1000").Code)
	}
}

func TestAuthRateLimit_IgnoresOtherRoutes(t *testing.T) {
	counter := newMemCounter()
	h := AuthRateLimit(counter, zap.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/collection-points", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, counter.counts)
}
