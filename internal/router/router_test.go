package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/handler/health"
	"github.com/jwalitptl/hospital-admin/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

func TestRouter_Setup(t *testing.T) {
	m := metrics.NewMetrics("test")
	r := NewRouter(nil, health.NewHandler(nil), prometheus.New(m.Registry))
	r.Setup()

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ServeStopsOnCancel(t *testing.T) {
	r := NewRouter(nil, health.NewHandler(nil))
	r.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
