package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkFunc func(ctx context.Context) error

func (f checkFunc) Ping(ctx context.Context) error { return f(ctx) }

func setupRouter(checks map[string]Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(checks).RegisterRoutes(r.Group(""))
	return r
}

func TestLiveness(t *testing.T) {
	r := setupRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Checker
		wantStatus int
		wantBody   string
	}{
		{
			name: "all up",
			checks: map[string]Checker{
				"store": checkFunc(func(context.Context) error { return nil }),
			},
			wantStatus: http.StatusOK,
			wantBody:   "UP",
		},
		{
			name: "broker down",
			checks: map[string]Checker{
				"store":  checkFunc(func(context.Context) error { return nil }),
				"broker": checkFunc(func(context.Context) error { return errors.New("connection refused") }),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "DOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(tt.checks)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			assert.Equal(t, tt.wantStatus, w.Code)

			var body struct {
				Status     string                            `json:"status"`
				Components map[string]map[string]interface{} `json:"components"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Status)
			assert.Len(t, body.Components, len(tt.checks))
		})
	}
}
