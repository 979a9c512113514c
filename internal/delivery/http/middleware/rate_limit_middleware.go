package middleware

import (
	"time"

	"wellness/config"
	"wellness/internal/delivery/http/response"
	"wellness/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL         = 10 * time.Minute
	limiterCleanupInterval = time.Minute
)

// RateLimitMiddleware throttles clients by IP with a token bucket per address.
// Idle buckets expire so the table does not grow without bound.
type RateLimitMiddleware struct {
	limiters *gocache.Cache
	rate     rate.Limit
	burst    int
	metrics  *metrics.Registry
}

// NewRateLimitMiddleware builds the limiter from the rateLimit config section.
func NewRateLimitMiddleware(cfg *config.Config, reg *metrics.Registry) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limiters: gocache.New(limiterIdleTTL, limiterCleanupInterval),
		metrics:  reg,
	}
	if cfg.RateLimit != nil && cfg.RateLimit.RequestsPerSecond > 0 {
		m.rate = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		m.burst = max(cfg.RateLimit.Burst, 1)
	}

	return m
}

// Enabled reports whether a positive request rate is configured.
func (m *RateLimitMiddleware) Enabled() bool {
	return m.rate > 0
}

// Handle rejects requests beyond the client's budget with 429.
func (m *RateLimitMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.Enabled() {
			return next(c)
		}

		if !m.limiterFor(c.RealIP()).Allow() {
			if m.metrics != nil {
				m.metrics.ObserveRateLimited()
			}

			return response.TooManyRequests(c, "RATE_LIMITED", "Too many requests, please slow down")
		}

		return next(c)
	}
}

func (m *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	if cached, ok := m.limiters.Get(ip); ok {
		limiter := cached.(*rate.Limiter)
		m.limiters.SetDefault(ip, limiter)

		return limiter
	}

	// Add loses to a concurrent insert for the same IP; the winner is reused.
	limiter := rate.NewLimiter(m.rate, m.burst)
	if err := m.limiters.Add(ip, limiter, gocache.DefaultExpiration); err != nil {
		if cached, ok := m.limiters.Get(ip); ok {
			return cached.(*rate.Limiter)
		}
	}

	return limiter
}
