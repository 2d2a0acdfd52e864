// Package middleware provides Gin HTTP middleware for authentication, rate
// limiting, security headers, request IDs, and metrics.
//
// Middleware ordering matters and is enforced in router.go:
//
//	Recovery → RequestID → Metrics → Logger → CORS → SecurityHeaders → RateLimit → Auth → Handler
//
// Metrics wrap everything downstream so error responses are counted; rate
// limiting runs before auth to block brute-force attempts without touching
// the database.
package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/taskhub/internal/telemetry"
)

// MetricsMiddleware records http_requests_total and
// http_request_duration_seconds for every request. The path label uses
// c.FullPath(), the matched route template (e.g. /api/v1/projects/:id), so
// per-resource URLs do not inflate label cardinality; unmatched requests are
// labelled "<no-route>".
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "<no-route>"
		}

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		status := fmt.Sprintf("%d", c.Writer.Status())

		telemetry.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}
