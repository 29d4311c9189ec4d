package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	kvStoreRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marabu",
		Subsystem: "kv_store",
		Name:      "operations_total",
		Help:      "Count of key-value store operations.",
	}, []string{"store", "operation", "status"})
	kvStoreRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marabu",
		Subsystem: "kv_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of key-value store operations.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"store", "operation", "status"})
)

// KVStore tracks metrics for key-value store operations.
type KVStore struct{}

// NewKVStore creates a KVStore metrics collector.
func NewKVStore() *KVStore {
	return &KVStore{}
}

// Observe records duration and status of a store operation.
func (m KVStore) Observe(store, operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	if store == "" {
		store = "unknown"
	}

	kvStoreRequestsTotal.WithLabelValues(store, operation, status).Inc()
	kvStoreRequestDuration.WithLabelValues(store, operation, status).Observe(time.Since(started).Seconds())
}
