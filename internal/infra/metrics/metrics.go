// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wellness"

// Registry holds all Prometheus metrics for the service.
// Each Registry owns its own prometheus.Registry so instances never collide.
type Registry struct {
	registry *prometheus.Registry

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RateLimitedTotal    prometheus.Counter

	// Database Metrics
	DBConnections *prometheus.GaugeVec

	// Ledger Metrics
	LedgerMutationsTotal    *prometheus.CounterVec
	LedgerConflictsTotal    prometheus.Counter
	WalletEventsFailedTotal prometheus.Counter

	// Worker Metrics
	WalletEventsConsumedTotal *prometheus.CounterVec
}

// NewRegistry initializes and returns a new Registry with all metrics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed by route, method, and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distribution in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_rate_limited_total",
				Help:      "Requests rejected by the per-IP rate limiter",
			},
		),

		DBConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections",
				Help:      "Current number of database connections",
			},
			[]string{"state"},
		),

		LedgerMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_mutations_total",
				Help:      "Balance mutations by transaction type and outcome",
			},
			[]string{"transaction_type", "outcome"},
		),
		LedgerConflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_version_conflicts_total",
				Help:      "Membership compare-and-swap updates that lost a race",
			},
		),
		WalletEventsFailedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_events_publish_failed_total",
				Help:      "Wallet events that could not be published",
			},
		),

		WalletEventsConsumedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_events_consumed_total",
				Help:      "Wallet events received by the worker by transaction type and outcome",
			},
			[]string{"transaction_type", "outcome"},
		),
	}
}

// Handler serves the exposition format for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry, mostly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveHTTPRequest records one finished request.
func (r *Registry) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveRateLimited counts a request rejected by the per-IP limiter.
func (r *Registry) ObserveRateLimited() {
	r.RateLimitedTotal.Inc()
}

// ObserveMutation implements service.LedgerMetrics.
func (r *Registry) ObserveMutation(transactionType, outcome string) {
	r.LedgerMutationsTotal.WithLabelValues(transactionType, outcome).Inc()
}

// ObserveVersionConflict implements service.LedgerMetrics.
func (r *Registry) ObserveVersionConflict() {
	r.LedgerConflictsTotal.Inc()
}

// ObserveEventPublishFailure counts a wallet event that could not be published.
func (r *Registry) ObserveEventPublishFailure() {
	r.WalletEventsFailedTotal.Inc()
}

// ObserveEventConsumed counts a wallet event handled by the worker.
func (r *Registry) ObserveEventConsumed(transactionType, outcome string) {
	r.WalletEventsConsumedTotal.WithLabelValues(transactionType, outcome).Inc()
}

// ObserveDBPool copies connection pool stats into gauges.
func (r *Registry) ObserveDBPool(stats sql.DBStats) {
	r.DBConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	r.DBConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	r.DBConnections.WithLabelValues("idle").Set(float64(stats.Idle))
}
