package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHandler_Health(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		ping       error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Healthy",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","timestamp":"2024-01-20T09:00:00Z","version":"1.0.0"}`,
		},
		{
			name:       "DatabaseDown",
			ping:       errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable","timestamp":"2024-01-20T09:00:00Z","version":"1.0.0"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(pingFunc(func(context.Context) error { return tt.ping }), "1.0.0")
			h.now = func() time.Time { return now }

			r := chi.NewRouter()
			r.Route("/api/health", h.Routes)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
