package observability

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorCodeKey is the gin context key under which handlers record the
// resolution error code of a failed request.
const ErrorCodeKey = "didcheqd.error_code"

// RequestLogger logs one line per request with the resolved DID (the
// *did route parameter) and, on failure, the resolution error code.
// 5xx log at error level and 4xx at warn.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		if code := c.GetString(ErrorCodeKey); code != "" {
			event = event.Str("error_code", code)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("did", strings.TrimPrefix(c.Param("did"), "/")).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("bytes", c.Writer.Size()).
			Msg("http_request")
	}
}

// RequestMetricsMiddleware labels requests by route pattern, so DIDs never
// become label values.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
