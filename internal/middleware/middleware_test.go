package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-admin/pkg/logger"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(logger.Nop()), Recovery(logger.Nop()))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRequestID(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	generated := w.Header().Get(HeaderXRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderXRequestID))
}

func TestRequestID_ReplacesMalformed(t *testing.T) {
	r := newEngine()

	for name, rid := range map[string]string{
		"too long":     strings.Repeat("a", MaxRequestIDLength+1),
		"control char": "abc\x01def",
		"whitespace":   "abc def",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			req.Header.Set(HeaderXRequestID, rid)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderXRequestID)
			assert.NotEqual(t, rid, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
			assert.Equal(t, got, w.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	exact := strings.Repeat("a", MaxRequestIDLength)
	req.Header.Set(HeaderXRequestID, exact)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, exact, w.Header().Get(HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ERROR"`)
}
