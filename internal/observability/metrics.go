package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records store operation latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CascadeRowsDeleted counts rows removed as a side effect of deleting an ancestor.
	CascadeRowsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cascade_rows_deleted_total",
		Help: "Rows removed by cascading deletes, by table",
	}, []string{"table"})

	// EntitiesDeleted counts explicit deletes that removed their target.
	EntitiesDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_entities_deleted_total",
		Help: "Explicit deletes that removed a row, by table",
	}, []string{"table"})

	// IntegrityRejections counts writes refused by referential checks.
	IntegrityRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_integrity_rejections_total",
		Help: "Writes refused by integrity checks, by resource and reason",
	}, []string{"resource", "reason"})

	// EventPublishFailures counts domain events that could not be published.
	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_event_publish_failures_total",
		Help: "Domain events that failed to publish, by event type",
	}, []string{"event_type"})
)

// Rejection reasons recorded on IntegrityRejections.
const (
	ReasonValidation       = "validation"
	ReasonInvalidReference = "invalid_reference"
	ReasonConstraintRace   = "constraint_race"
)

// TrackQuery returns a function that records latency when called, typically via defer.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordCascade adds the rows a cascading delete removed from each table.
func RecordCascade(table string, target int64, posts, comments int) {
	if target > 0 {
		EntitiesDeleted.WithLabelValues(table).Inc()
	}
	if posts > 0 {
		CascadeRowsDeleted.WithLabelValues("posts").Add(float64(posts))
	}
	if comments > 0 {
		CascadeRowsDeleted.WithLabelValues("comments").Add(float64(comments))
	}
}

// RecordRejection counts one refused write.
func RecordRejection(resource, reason string) {
	IntegrityRejections.WithLabelValues(resource, reason).Inc()
}
