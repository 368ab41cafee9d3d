package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

// ErrorHandler renders the last error pushed with c.Error. Causes are only
// exposed when exposeCauses is set, which is never the case in production.
func ErrorHandler(exposeCauses bool, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only handle errors if they exist
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		resp := ErrorResponse{Error: "Internal server error"}

		if appErr, ok := apperrors.As(err); ok {
			status = appErr.StatusCode()
			resp.Error = appErr.Message
			resp.Details = appErr.Details
			if exposeCauses && appErr.Err != nil {
				resp.Stack = appErr.Err.Error()
			}
		} else if exposeCauses {
			resp.Stack = err.Error()
		}

		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Err(err).
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request error")

		if m != nil {
			m.ErrorTotal.WithLabelValues(c.Request.Method, routeLabel(c), http.StatusText(status)).Inc()
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, resp)
	}
}

// abortWithError pushes err for ErrorHandler and stops the chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
