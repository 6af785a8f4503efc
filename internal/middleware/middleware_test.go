package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func do(r *gin.Engine, method string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowsListedOrigin(t *testing.T) {
	r := newRouter(CORS([]string{"https://ironpeak.example/"}))

	w := do(r, http.MethodGet, map[string]string{"Origin": "https://ironpeak.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://ironpeak.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	w = do(r, http.MethodGet, map[string]string{"Origin": "https://elsewhere.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyListAllowsAnyOrigin(t *testing.T) {
	r := newRouter(CORS(nil))

	w := do(r, http.MethodGet, map[string]string{"Origin": "https://anything.example"})
	assert.Equal(t, "https://anything.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, nil)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	r := newRouter(CORS([]string{"https://ironpeak.example"}))

	w := do(r, http.MethodOptions, map[string]string{"Origin": "https://ironpeak.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	w = do(r, http.MethodOptions, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestLoggingAndMetrics(t *testing.T) {
	r := newRouter(RequestLogging(), Metrics())

	w := do(r, http.MethodGet, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func TestRateLimit_Rejects(t *testing.T) {
	lim := &stubLimiter{allow: false}
	r := newRouter(RateLimit("verify", lim))

	w := do(r, http.MethodGet, nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests. Please slow down.","error_code":"rate_limited"}`, w.Body.String())
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, []string{"verify:192.0.2.1"}, lim.keys)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := newRouter(RateLimit("api", &stubLimiter{err: errors.New("redis down")}))

	w := do(r, http.MethodGet, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_Allows(t *testing.T) {
	r := newRouter(RateLimit("api", &stubLimiter{allow: true}))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, nil).Code)
}
