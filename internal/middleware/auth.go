package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	apperrors "github.com/tsireledzonetshilonwe/quick-health-hub/pkg/errors"
)

const (
	msgLoginRequired    = "Unauthorized - Please login"
	msgUnauthorized     = "Unauthorized"
	msgInsufficientRole = "Forbidden - Insufficient permissions"
)

// Authenticate rejects requests that carry no valid session.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.FromContext(c.Request.Context()); !ok {
			abortWithError(c, apperrors.Unauthorized(msgLoginRequired))
			return
		}
		c.Next()
	}
}

// RequireRole admits sessions whose role snapshot holds at least one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := session.FromContext(c.Request.Context())
		if !ok {
			abortWithError(c, apperrors.Unauthorized(msgUnauthorized))
			return
		}
		if !s.HasAnyRole(roles...) {
			abortWithError(c, apperrors.Forbidden(msgInsufficientRole))
			return
		}
		c.Next()
	}
}
