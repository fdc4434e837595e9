package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himarpl/himarpl-api/internal/ratelimit"
)

type stubLimiter struct {
	result ratelimit.Result
	err    error
	calls  int
	ids    []string
}

func (s *stubLimiter) Limit(_ context.Context, id string) (ratelimit.Result, error) {
	s.calls++
	s.ids = append(s.ids, id)
	return s.result, s.err
}

func newGatedEngine(limiter ratelimit.Limiter, handlerCalls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/items", RateLimit(limiter, nil), func(c *gin.Context) {
		*handlerCalls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitAdmits(t *testing.T) {
	limiter := &stubLimiter{result: ratelimit.Result{Success: true, Limit: 10, Remaining: 9, Reset: time.UnixMilli(1700000000000)}}
	calls := 0
	r := newGatedEngine(limiter, &calls)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, limiter.calls)
	assert.Equal(t, []string{"10.1.2.3"}, limiter.ids)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1700000000000", w.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitRejectsBeforeHandler(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock = func() time.Time { return now }
	defer func() { clock = time.Now }()

	reset := now.Add(2500 * time.Millisecond)
	limiter := &stubLimiter{result: ratelimit.Result{Success: false, Limit: 10, Remaining: 0, Reset: reset}}
	calls := 0
	r := newGatedEngine(limiter, &calls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, limiter.calls)
	assert.Equal(t, "3", w.Header().Get("Retry-After"))

	var body struct {
		Error    string                 `json:"error"`
		Code     string                 `json:"code"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Code)
	assert.Equal(t, "Too many requests", body.Error)
	assert.EqualValues(t, reset.UnixMilli(), body.Metadata["resetTimestamp"])
}

func TestRateLimitFailureIsInternalError(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	calls := 0
	r := newGatedEngine(limiter, &calls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, calls)
	assert.NotContains(t, w.Body.String(), "redis down")
}

func TestRateLimitNoopSetsNoHeaders(t *testing.T) {
	calls := 0
	r := newGatedEngine(ratelimit.Noop{}, &calls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}
