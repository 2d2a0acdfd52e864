// Package telemetry provides application-level observability for TaskHub.
//
// # Prometheus Metrics Endpoint
//
// All metrics are registered against the default Prometheus registry and are
// automatically available on the side-channel HTTP server started by main.go:
//
//	GET http(s)://<host>:<TH_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090. The endpoint returns data in the Prometheus text exposition
// format and is intended to be scraped by a Prometheus server every 15–60 seconds.
// It is NOT served by the Gin router.
//
// # Label Cardinality
//
// HTTP metrics use c.FullPath() (route template such as /api/v1/projects/:id)
// rather than the raw request URL to prevent unbounded label cardinality from
// user-supplied path segments such as project or task identifiers.
package telemetry

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics — labelled by method, route template, and status code.
//
// Example PromQL queries:
//   - Request rate (req/s, 5 m window):  rate(http_requests_total[5m])
//   - Error rate (%):                    sum(rate(http_requests_total{status=~"5.."}[5m])) / sum(rate(http_requests_total[5m])) * 100
//   - p99 latency per route:             histogram_quantile(0.99, sum by (path, le) (rate(http_request_duration_seconds_bucket[5m])))
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Domain metrics — incremented by the resource handlers on successful writes.
//
// ProjectsCreatedTotal counts project creations, labelled by visibility, so
// dashboards can show how tenants use private vs. team vs. public projects.
// TasksCreatedTotal counts task creations by priority.
// LoginAttemptsTotal counts login attempts by result ("success" / "failure");
// a rising failure rate is the first signal of credential stuffing.
var (
	ProjectsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projects_created_total",
			Help: "Total number of projects created, by visibility.",
		},
		[]string{"visibility"},
	)

	TasksCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasks_created_total",
			Help: "Total number of tasks created, by priority.",
		},
		[]string{"priority"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts, by result.",
		},
		[]string{"result"},
	)
)

// Database connection pool gauges — polled every 30 seconds by StartDBStatsCollector.
var (
	DBConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_open",
		Help: "Number of established connections both in use and idle.",
	})

	DBConnectionsInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_in_use",
		Help: "Number of connections currently in use.",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Number of idle connections.",
	})
)

// StartDBStatsCollector begins exporting database pool statistics to Prometheus.
// It polls db.Stats() every 30 seconds in a background goroutine for the life of
// the process. Call once after the database connection is established.
func StartDBStatsCollector(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			stats := db.Stats()
			DBConnectionsOpen.Set(float64(stats.OpenConnections))
			DBConnectionsInUse.Set(float64(stats.InUse))
			DBConnectionsIdle.Set(float64(stats.Idle))
		}
	}()
	slog.Debug("database stats collector started")
}
