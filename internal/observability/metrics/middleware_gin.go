package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/rankinvoice/pkg/telemetry"
)

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.ObserveAPIRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
