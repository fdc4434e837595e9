package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/himarpl/himarpl-api/internal/service"
	"github.com/himarpl/himarpl-api/pkg/response"
)

const unmatchedRoute = "unmatched"

// Metrics observes latency and status per route template, and counts the envelope code
// each handler wrote.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
		metricsSvc.RecordEnvelope(route, c.GetString(response.CodeContextKey))
	}
}
