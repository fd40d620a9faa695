package prometheus

import (
	"time"

	"farm-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec

	// Permission gate metrics
	PermissionDeniedCounter *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Bootstrap (full data load) metrics
	BootstrapCounter      prometheus.Counter
	BootstrapErrorCounter prometheus.Counter

	// Entity mutation metrics
	EntityOperationsCounter prometheus.CounterVec

	// Traceability lookup metrics
	TraceLookupCounter *prometheus.CounterVec

	// Assistant metrics
	AssistantRequestsCounter prometheus.Counter
	AssistantErrorsCounter   prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	// Permission gate metrics
	PermissionDeniedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_permission_denied_total",
			Help: "Total number of requests denied by the permission gate",
		},
		[]string{"module", "action"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Bootstrap metrics
	BootstrapCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_bootstrap_total",
			Help: "Total number of full data loads",
		},
	)

	BootstrapErrorCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_bootstrap_errors_total",
			Help: "Total number of failed full data loads",
		},
	)

	// Entity mutation metrics
	EntityOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_entity_operations_total",
			Help: "Total number of entity save/delete operations",
		},
		[]string{"table", "operation"},
	)

	// Traceability lookup metrics
	TraceLookupCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_trace_lookups_total",
			Help: "Total number of public traceability lookups",
		},
		[]string{"result"},
	)

	// Assistant metrics
	AssistantRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_assistant_requests_total",
			Help: "Total number of assistant chat requests",
		},
	)

	AssistantErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_assistant_errors_total",
			Help: "Total number of failed assistant chat requests",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for a failed authentication
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordEntityOperation increments the counter for a save or delete on a table
func RecordEntityOperation(table, operation string) {
	EntityOperationsCounter.WithLabelValues(table, operation).Inc()
}

// RecordPermissionDenied increments the counter for a denied module action
func RecordPermissionDenied(module, action string) {
	PermissionDeniedCounter.WithLabelValues(module, action).Inc()
}

// RecordTraceLookup increments the counter for a traceability lookup outcome
func RecordTraceLookup(result string) {
	TraceLookupCounter.WithLabelValues(result).Inc()
}
