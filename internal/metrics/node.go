package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeObjectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marabu",
		Subsystem: "node",
		Name:      "objects_total",
		Help:      "Count of submitted objects by kind and result.",
	}, []string{"kind", "result"})
	nodeValidationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marabu",
		Subsystem: "node",
		Name:      "validation_duration_seconds",
		Help:      "Duration of object validation including dependency fetches.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"kind", "result"})
)

// Node tracks the outcome of submitted objects.
type Node struct{}

// NewNode constructs a Node metrics collector.
func NewNode() *Node {
	return &Node{}
}

// ObserveSubmit records one submission outcome and how long it took.
func (m Node) ObserveSubmit(kind, result string, started time.Time) {
	if kind == "" {
		kind = "unknown"
	}
	nodeObjectsTotal.WithLabelValues(kind, result).Inc()
	nodeValidationDuration.WithLabelValues(kind, result).Observe(time.Since(started).Seconds())
}
