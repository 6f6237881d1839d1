// Package middleware provides HTTP middleware functions.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs one entry per request. Level follows the response status.
// Requests to skipPaths that succeed are not logged.
func Logger(logger *zap.SugaredLogger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		if _, ok := skip[path]; ok && status < 400 {
			return
		}

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		if id := GetRequestID(c); id != "" {
			fields = append(fields, "request_id", id)
		}
		if pid, ok := ParticipantID(c); ok {
			fields = append(fields, "participant_id", pid)
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		logFor(logger, status)("HTTP request", fields...)
	}
}

func logFor(logger *zap.SugaredLogger, status int) func(string, ...interface{}) {
	switch {
	case status >= 500:
		return logger.Errorw
	case status >= 400:
		return logger.Warnw
	default:
		return logger.Infow
	}
}
