package middleware

import (
	"time"

	"wellness/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latency per route template.
type MetricsMiddleware struct {
	metrics *metrics.Registry
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(reg *metrics.Registry) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: reg}
}

// Handle observes every request once the response status is known.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveHTTPRequest(route, c.Request().Method, c.Response().Status, time.Since(start))

		return nil
	}
}
