package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

// quietPaths are polled by health checks and long-lived streams; logging them only
// adds noise.
var quietPaths = map[string]bool{
	"/healthcheck":    true,
	"/api/sse/stream": true,
}

// RequestLogger writes one structured line per request once the handler
// chain is done. Level follows the status class.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		if quietPaths[route] {
			return
		}

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		if userID, ok := ctxutil.CurrentUserID(c.Request.Context()); ok {
			fields = append(fields, "user_id", userID.String())
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP request", fields...)
		default:
			log.Debug("HTTP request", fields...)
		}
	}
}
