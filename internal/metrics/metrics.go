package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// QueryDuration tracks executor statement duration in seconds by schema, mode, outcome.
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database statement duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"schema", "mode", "outcome"},
	)

	// QueryTotal counts executor statements by schema, mode, outcome (ok, error).
	QueryTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database statements run by the executor",
		},
		[]string{"schema", "mode", "outcome"},
	)
)

var (
	keyedPathSegment = regexp.MustCompile(`^(/(?:wbs|resources))/[^/]+$`)
	initOnce         sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, QueryDuration, QueryTotal)
	})
}

// NormalizePath reduces cardinality by replacing the key segment of the CRUD
// routes with {id}. E.g. /wbs/WBS001 -> /wbs/{id}, /resources/E42 -> /resources/{id}.
func NormalizePath(path string) string {
	return keyedPathSegment.ReplaceAllString(path, "$1/{id}")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordQuery records duration and count for one executor statement.
func RecordQuery(schema, mode, outcome string, durationSeconds float64) {
	QueryDuration.WithLabelValues(schema, mode, outcome).Observe(durationSeconds)
	QueryTotal.WithLabelValues(schema, mode, outcome).Inc()
}
