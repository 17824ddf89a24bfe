package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/partitions", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	handler := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, Burst: 10}).Handler(okHandler())

	for range 5 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("10.0.0.1:1234"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	handler := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}).Handler(okHandler())

	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("10.0.0.1:1234"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.InDelta(t, float64(429), body["code"], 0.001)
	assert.Equal(t, "rate limit exceeded", body["message"])
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	handler := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}).Handler(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.1:2"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "port is not part of the client key")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.2:1"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_IgnoresForwardedFor(t *testing.T) {
	handler := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}).Handler(okHandler())

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := requestFrom("10.0.0.1:1")
		req.Header.Set("X-Forwarded-For", "192.0.2."+string(rune('1'+i)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code)
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	l.now = func() time.Time { return now }

	l.Handler(okHandler()).ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:1"))
	now = now.Add(5 * time.Minute)
	l.Handler(okHandler()).ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.2:1"))
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, l.Sweep(10*time.Minute))
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.0.2")
}

func TestRateLimiter_RunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	<-done
}
