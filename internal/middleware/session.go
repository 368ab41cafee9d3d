package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
)

// Session attaches the caller's session, if any, to the request context.
// It never rejects a request on its own; see Authenticate. When the store
// cannot be reached the request carries on anonymously.
func Session(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := mgr.Load(c)
		if err != nil {
			log.Error().
				Err(err).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(ContextRequestID)).
				Msg("Session store unavailable")
		}
		if s != nil {
			c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), s))
		}
		c.Next()
	}
}
