package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
	"github.com/himarpl/himarpl-api/pkg/middleware/requestid"
	"github.com/himarpl/himarpl-api/pkg/response"
)

// Recovery turns a handler panic into the standard INTERNAL_ERROR envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", requestid.Value(c)),
					zap.Stack("stack"),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Abort(c, appErrors.Wrap(fmt.Errorf("panic: %v", rec), appErrors.CodeInternal, appErrors.ErrInternal.Message))
			}
		}()
		c.Next()
	}
}
