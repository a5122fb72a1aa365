// Package telemetry provides application-level observability for VolunteerHub.
//
// # Prometheus Metrics Endpoint
//
// All metrics are registered against the default Prometheus registry and are
// automatically available on the side-channel HTTP server started by main.go:
//
//	GET http(s)://<host>:<VHUB_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090.  The endpoint returns data in the Prometheus text exposition
// format and is intended to be scraped by a Prometheus server every 15–60 seconds.
// It is NOT served by the Gin router.
//
// # Metric Groups
//
//   - HTTP request counters and latency histograms (labelled by route template, not raw URL)
//   - Organization signup request counters by outcome
//   - Volunteer profile update counters
//   - Notification email counters
//   - Database connection pool gauge (polled every 30 s)
//
// # Label Cardinality
//
// HTTP metrics use c.FullPath() (route template such as /volunteer/profile)
// rather than the raw request URL to prevent unbounded label cardinality.
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
// HTTPRequestsTotal is a CounterVec with labels {method, path, status}.
// The path label holds the Gin route template, NOT the raw URL.
//
// Example PromQL queries:
//   - Request rate (req/s, 5 m window):  rate(http_requests_total[5m])
//   - Error rate (%):                    sum(rate(http_requests_total{status=~"5.."}[5m])) / sum(rate(http_requests_total[5m])) * 100
//
// HTTPRequestDuration is a HistogramVec with labels {method, path} and
// exponential-ish buckets from 5 ms to 30 s.
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

// Signup and review metrics.
//
// SignupRequestsTotal is a CounterVec with label {outcome} incremented once per
// POST /organization/request.  Outcomes: "accepted", "account_exists",
// "request_pending", "invalid", "error".
//
// Example PromQL queries:
//   - Conflict ratio:  sum(rate(signup_requests_total{outcome=~"account_exists|request_pending"}[1h])) / sum(rate(signup_requests_total[1h]))
//
// AdminDecisionsTotal is a CounterVec with label {action} ("approve", "reject")
// incremented when an administrator resolves a pending request.
var (
	SignupRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_requests_total",
			Help: "Total number of organization signup requests received, by outcome.",
		},
		[]string{"outcome"},
	)

	AdminDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_decisions_total",
			Help: "Total number of admin decisions on pending signup requests, by action.",
		},
		[]string{"action"},
	)
)

// ProfileUpdatesTotal is a CounterVec with label {outcome} ("saved", "invalid",
// "error") incremented once per PUT /volunteer/profile.
//
// Example PromQL queries:
//   - Save failure rate:  rate(profile_updates_total{outcome="error"}[1h])
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "profile_updates_total",
		Help: "Total number of volunteer profile update attempts, by outcome.",
	},
	[]string{"outcome"},
)

// NotificationEmailsSentTotal is a plain Counter incremented once per email
// successfully delivered (signup notifications, approval/rejection mails,
// pending-request reminders).  A stalled counter combined with pending requests
// piling up is a useful alert signal for SMTP delivery failures.
var NotificationEmailsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "notification_emails_sent_total",
		Help: "Total number of notification emails successfully sent.",
	},
)

// DBOpenConnections is a Gauge that tracks the number of open connections currently
// held by the sql.DB connection pool.  It is sampled every 30 seconds by
// StartDBStatsCollector rather than per-request to avoid the overhead of sql.DB.Stats().
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector launches a background goroutine that samples sql.DB connection
// pool statistics every 30 seconds and updates the DBOpenConnections gauge.
// The goroutine exits cleanly when the database becomes unreachable (db.Ping fails),
// which happens automatically when the application shuts down and defers db.Close().
//
// Call this once, immediately after db.Connect() succeeds in main.go:
//
//	telemetry.StartDBStatsCollector(database)
func StartDBStatsCollector(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()
}
