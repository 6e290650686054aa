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

	// UsersRegistered counts successful user registrations.
	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of users registered",
		},
	)

	// ExercisesRecorded counts successfully recorded exercises.
	ExercisesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exercises_recorded_total",
			Help: "Total number of exercises recorded",
		},
	)

	// TimestampFallbacks counts date resolutions that fell back to the current
	// date because the timestamp service failed or the input was unrecognized.
	TimestampFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "timestamp_fallbacks_total",
			Help: "Total number of date resolutions that fell back to the current date",
		},
	)

	// UsersTotal is the number of users in the store, refreshed by the stats job.
	UsersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_total",
			Help: "Number of users in the store",
		},
	)

	// ExercisesTotal is the number of exercises in the store, refreshed by the stats job.
	ExercisesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "exercises_total",
			Help: "Number of exercises in the store",
		},
	)
)

var (
	idPathSegment = regexp.MustCompile(`/[0-9a-fA-F-]{8,}(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestDuration, RequestTotal,
			UsersRegistered, ExercisesRecorded, TimestampFallbacks,
			UsersTotal, ExercisesTotal,
		)
	})
}

// NormalizePath reduces cardinality by replacing id-like path segments with {id}.
// E.g. /api/users/2f1c9a4e-.../logs -> /api/users/{id}/logs.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}
