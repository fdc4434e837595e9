package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/himarpl/himarpl-api/internal/ratelimit"
	"github.com/himarpl/himarpl-api/internal/service"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
	"github.com/himarpl/himarpl-api/pkg/response"
)

// AnonymousClient identifies callers whose address cannot be determined.
const AnonymousClient = "anonymous"

var clock = time.Now

// RateLimit admits each request through limiter exactly once, before any handler work runs.
func RateLimit(limiter ratelimit.Limiter, metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		id := c.ClientIP()
		if id == "" {
			id = AnonymousClient
		}

		result, err := limiter.Limit(c.Request.Context(), id)
		if err != nil {
			response.Abort(c, appErrors.Wrap(err, appErrors.CodeInternal, "rate limiter unavailable"))
			return
		}

		if result.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(result.Reset.UnixMilli(), 10))
		}

		if !result.Success {
			metricsSvc.RecordRateLimited(c.FullPath())
			wait := result.Reset.Sub(clock())
			c.Header("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(wait.Seconds())))))
			response.Abort(c, appErrors.Clone(appErrors.ErrTooManyRequests, "").
				WithMetadata("resetTimestamp", result.Reset.UnixMilli()))
			return
		}

		c.Next()
	}
}
