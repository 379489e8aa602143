package middleware

import (
	"time"

	"servicedesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logger.Info(c.Request.Context())
		if status >= 500 {
			ev = logger.Error(c.Request.Context())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("actor", ActorFrom(c).ID).
			Msg("[http][middleware] request")
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error(c.Request.Context()).Interface("panic", recovered).Msg("[http][middleware] recovered from panic")
		c.AbortWithStatus(500)
	})
}
