package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger writes one access log line per request. The line is emitted from a
// deferred call, so requests that panic further down the chain are logged too.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		defer logRequest(c, path, start)
		c.Next()
	}
}

func logRequest(c *gin.Context, path string, start time.Time) {
	status := c.Writer.Status()
	event := log.Info()
	switch {
	case status >= 500:
		event = log.Error()
	case status >= 400:
		event = log.Warn()
	}

	event.
		Str("request_id", c.GetString(ContextRequestID)).
		Str("method", c.Request.Method).
		Str("path", path).
		Str("query", c.Request.URL.RawQuery).
		Int("status", status).
		Dur("latency_ms", time.Since(start)).
		Str("ip", c.ClientIP()).
		Bool("authenticated", IsAuthenticated(c)).
		Msg("HTTP Request")
}
