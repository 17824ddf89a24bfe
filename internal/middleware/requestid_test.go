package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRequestID(t *testing.T, header string) (ctxID string, rec *httptest.ResponseRecorder) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return ctxID, rec
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	id, rec := captureRequestID(t, "")

	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_IncomingHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		reused bool
	}{
		{name: "alphanumeric with separators", header: "trace-01_AB.c:9", reused: true},
		{name: "max length", header: strings.Repeat("a", 128), reused: true},
		{name: "too long", header: strings.Repeat("a", 129)},
		{name: "newline log forging", header: "id\nlevel=ERROR msg=forged"},
		{name: "spaces", header: "id with spaces"},
		{name: "markup", header: "<b>id</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rec := captureRequestID(t, tt.header)

			require.NotEmpty(t, id)
			assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
			if tt.reused {
				assert.Equal(t, tt.header, id)
			} else {
				assert.NotEqual(t, tt.header, id)
			}
		})
	}
}

func TestRequestIDFromContext_EmptyWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
