package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	handler.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := CheckerFunc(func(ctx context.Context) error { return nil })
	down := CheckerFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name   string
		checks map[string]Checker
		status int
		want   map[string]string
	}{
		{
			name:   "no dependencies",
			checks: nil,
			status: http.StatusOK,
			want:   map[string]string{"status": "ready"},
		},
		{
			name:   "all healthy",
			checks: map[string]Checker{"postgres": ok, "redis": ok},
			status: http.StatusOK,
			want:   map[string]string{"status": "ready", "postgres": "ok", "redis": "ok"},
		},
		{
			name:   "redis down",
			checks: map[string]Checker{"postgres": ok, "redis": down},
			status: http.StatusServiceUnavailable,
			want:   map[string]string{"status": "not ready", "postgres": "ok", "redis": "unhealthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.checks)

			rec := httptest.NewRecorder()
			handler.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.status, rec.Code)
			var got map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}
