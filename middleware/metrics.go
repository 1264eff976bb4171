package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives per-request measurements.
type RequestRecorder interface {
	RecordRequest(method, path string, statusCode int, duration time.Duration)
	IncRequestsInFlight()
	DecRequestsInFlight()
}

// Metrics records every request under its route pattern so that path
// labels stay bounded.
func Metrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rec.IncRequestsInFlight()
		defer rec.DecRequestsInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		rec.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
