package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for CarCheck
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec
	DBConnections   prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	LedgerMutationsTotal prometheus.CounterVec
	TireChangesTotal     prometheus.Counter
	ShareTokensIssued    prometheus.Counter
	CarsOverdue          prometheus.GaugeVec
	CarsUpcoming         prometheus.GaugeVec
	MaintenanceSweepRuns prometheus.Counter
	MaintenanceSweepTime prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carcheck_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carcheck_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carcheck_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carcheck_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carcheck_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),
		DBConnections: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carcheck_db_connections",
				Help: "Current number of database connections",
			},
			[]string{"state"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carcheck_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carcheck_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		LedgerMutationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carcheck_fuel_ledger_mutations_total",
				Help: "Total fuel ledger mutations by kind (insert, update, delete)",
			},
			[]string{"kind"},
		),
		TireChangesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "carcheck_tire_changes_total",
				Help: "Total tire mount operations performed",
			},
		),
		ShareTokensIssued: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "carcheck_share_tokens_issued_total",
				Help: "Total single-use share tokens issued",
			},
		),
		CarsOverdue: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carcheck_cars_overdue",
				Help: "Cars with an overdue maintenance date, by criterion",
			},
			[]string{"criterion"},
		),
		CarsUpcoming: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "carcheck_cars_upcoming",
				Help: "Cars with a maintenance date due within the upcoming window, by criterion",
			},
			[]string{"criterion"},
		),
		MaintenanceSweepRuns: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "carcheck_maintenance_sweep_runs_total",
				Help: "Total maintenance sweep executions",
			},
		),
		MaintenanceSweepTime: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "carcheck_maintenance_sweep_duration_seconds",
				Help:    "Maintenance sweep execution time in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 5, 10, 30, 60},
			},
		),
	}
}
