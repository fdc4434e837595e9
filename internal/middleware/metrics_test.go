package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himarpl/himarpl-api/internal/ratelimit"
	"github.com/himarpl/himarpl-api/internal/service"
	"github.com/himarpl/himarpl-api/pkg/response"
)

func scrape(t *testing.T, metricsSvc *service.MetricsService) string {
	t.Helper()
	w := httptest.NewRecorder()
	metricsSvc.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsCountsEnvelopeCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metricsSvc := service.NewMetricsService()
	limiter := &stubLimiter{result: ratelimit.Result{Success: false, Reset: time.Now().Add(time.Second)}}

	r := gin.New()
	r.Use(Metrics(metricsSvc))
	r.GET("/open", func(c *gin.Context) { response.OK(c, []string{}, nil) })
	r.GET("/items", RateLimit(limiter, metricsSvc), func(c *gin.Context) {
		response.OK(c, []string{}, nil)
	})

	for _, path := range []string{"/open", "/items", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, metricsSvc)
	assert.Contains(t, body, `api_envelopes_total{code="SUCCESS",path="/open"} 1`)
	assert.Contains(t, body, `api_envelopes_total{code="TOO_MANY_REQUESTS",path="/items"} 1`)
	assert.Contains(t, body, `rate_limit_rejections_total{path="/items"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.NotContains(t, body, `api_envelopes_total{code="SUCCESS",path="/items"}`)
}

func TestMetricsWithoutService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/open", func(c *gin.Context) { response.OK(c, nil, nil) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
