// Package metrics defines Prometheus metrics for worktime.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worktime_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worktime_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worktime_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	GuardDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worktime_guard_denials_total",
			Help: "Operations rejected by the data-access guard",
		},
		[]string{"entity", "kind"},
	)

	AuditEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worktime_audit_entries_total",
			Help: "Audit entries written per entity and action",
		},
		[]string{"entity", "action"},
	)

	AuditPurgedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "worktime_audit_purged_total",
			Help: "Audit entries removed by retention purges",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worktime_websocket_connections",
			Help: "Active WebSocket audit-stream connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		GuardDenials, AuditEntriesTotal, AuditPurgedTotal,
		WSConnections,
	)
}
