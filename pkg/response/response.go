package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/himarpl/himarpl-api/internal/models"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
	"github.com/himarpl/himarpl-api/pkg/middleware/requestid"
)

// CodeSuccess marks successful envelopes.
const CodeSuccess = "SUCCESS"

// CodeContextKey holds the envelope code written for the request.
const CodeContextKey = "envelope_code"

// Envelope is the success contract shared by every list endpoint.
type Envelope struct {
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
	Code      string      `json:"code"`
	Metadata  interface{} `json:"metadata,omitempty"`
}

// ErrorEnvelope is the failure contract.
type ErrorEnvelope struct {
	Error     string                 `json:"error"`
	Timestamp string                 `json:"timestamp"`
	Code      string                 `json:"code"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

var now = time.Now

// Timestamp renders the current time the way every envelope reports it.
func Timestamp() string {
	return models.FormatTimestamp(now())
}

// JSON sends a success envelope with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, metadata interface{}) {
	c.Set(CodeContextKey, CodeSuccess)
	c.JSON(status, Envelope{
		Data:      data,
		Timestamp: Timestamp(),
		Code:      CodeSuccess,
		Metadata:  metadata,
	})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}, metadata interface{}) {
	JSON(c, http.StatusOK, data, metadata)
}

// Error sends a failure envelope converting the error to the common structure.
// Internal errors never expose their cause; the request id is attached instead.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	body := ErrorEnvelope{
		Error:     appErr.Message,
		Timestamp: Timestamp(),
		Code:      appErr.Code,
		Metadata:  appErr.Metadata,
		Details:   appErr.Details,
	}
	if appErr.Status >= http.StatusInternalServerError {
		body.Metadata = map[string]interface{}{"message": "An unexpected error occurred"}
		if reqID := requestid.Value(c); reqID != "" {
			body.Metadata["requestId"] = reqID
		}
		_ = c.Error(appErr)
	}
	c.Set(CodeContextKey, appErr.Code)
	c.JSON(appErr.Status, body)
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Set(CodeContextKey, CodeSuccess)
	c.Status(http.StatusNoContent)
}
