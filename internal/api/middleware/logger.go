package middleware

import (
	"time"

	"storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger records one line per request through the shared leveled logger,
// including the session id so per-session flows can be traced.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		log.Info("%s %s %d %s session=%s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.GetHeader("X-Session-ID"),
		)
	}
}
