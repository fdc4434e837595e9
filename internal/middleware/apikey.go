package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/himarpl/himarpl-api/internal/auth"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
	"github.com/himarpl/himarpl-api/pkg/response"
)

// APIKeyHeader carries the caller's key.
const APIKeyHeader = "X-API-Key"

// ContextPrincipalKey is the gin context key storing the authenticated principal.
const ContextPrincipalKey = "principal"

// APIKey rejects requests whose X-API-Key is missing or not accepted by authenticator.
func APIKey(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "Missing API key"))
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), key)
		if err != nil {
			response.Abort(c, appErrors.Wrap(err, appErrors.CodeUnauthorized, "Invalid API key"))
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}
