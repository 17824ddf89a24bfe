package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fi-dashboard/internal/app"
	"fi-dashboard/internal/config"
	"fi-dashboard/internal/middleware"
	"fi-dashboard/internal/testutil"
)

func TestCurlHostForListenAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		listenAddr string
		want       string
	}{
		{name: "port only", listenAddr: ":8080", want: "localhost:8080"},
		{name: "ipv4 host and port", listenAddr: "127.0.0.1:8080", want: "127.0.0.1:8080"},
		{name: "wildcard ipv4", listenAddr: "0.0.0.0:8080", want: "localhost:8080"},
		{name: "wildcard ipv6", listenAddr: "[::]:8080", want: "localhost:8080"},
		{name: "ipv6 loopback", listenAddr: "[::1]:8080", want: "[::1]:8080"},
		{name: "trim host and port", listenAddr: " localhost:9090 ", want: "localhost:9090"},
		{name: "trim port only", listenAddr: "  :7070  ", want: "localhost:7070"},
		{name: "empty falls back", listenAddr: "", want: "localhost:8080"},
		{name: "whitespace falls back", listenAddr: "   ", want: "localhost:8080"},
		{name: "malformed passes through", listenAddr: "localhost", want: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := curlHostForListenAddr(tt.listenAddr)

			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestRouter(t *testing.T, burst int) http.Handler {
	t.Helper()
	cfg := &config.Config{
		DataPath:           testutil.WriteFile(t, "unified.csv", testutil.SampleUnified),
		ForecastPath:       testutil.WriteFile(t, "forecast.csv", testutil.SampleForecast),
		CORSAllowedOrigins: []string{"https://dash.example.org"},
	}
	a, err := app.New(context.Background(), app.Deps{Cfg: cfg})
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{RequestsPerSecond: 0.001, Burst: burst})
	return newRouter(a, cfg, limiter, slog.New(slog.DiscardHandler))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	h := newTestRouter(t, 100)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "health", path: "/healthz", wantStatus: http.StatusOK},
		{name: "api", path: "/api/v1/partitions", wantStatus: http.StatusOK},
		{name: "ui overview", path: "/ui", wantStatus: http.StatusOK},
		{name: "ui trends", path: "/ui/trends", wantStatus: http.StatusOK},
		{name: "stylesheet", path: "/ui/static/app.css", wantStatus: http.StatusOK},
		{name: "unknown", path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_RootRedirectsToUI(t *testing.T) {
	rec := serve(newTestRouter(t, 100), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ui", rec.Header().Get("Location"))
}

func TestRouter_CORSOnAPI(t *testing.T) {
	h := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/overview", nil)
	req.Header.Set("Origin", "https://dash.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := serve(h, req)

	assert.Equal(t, "https://dash.example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = serve(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimited(t *testing.T) {
	h := newTestRouter(t, 2)

	var codes []int
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/scenarios", nil)).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "health check is not rate limited")
}
