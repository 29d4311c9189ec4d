package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetcherRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marabu",
		Subsystem: "fetcher",
		Name:      "requests_total",
		Help:      "Count of object fetches by outcome.",
	}, []string{"status"})
	fetcherWaitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marabu",
		Subsystem: "fetcher",
		Name:      "wait_duration_seconds",
		Help:      "Time spent waiting for a requested object.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"status"})
	fetcherPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "marabu",
		Subsystem: "fetcher",
		Name:      "pending",
		Help:      "Number of object ids currently awaited.",
	})
)

// Fetcher tracks object fetch outcomes.
type Fetcher struct{}

// NewFetcher constructs a Fetcher metrics collector.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// ObserveFetch records one fetch under its outcome label, such as "arrived" or "timeout".
func (m Fetcher) ObserveFetch(status string, started time.Time) {
	fetcherRequestsTotal.WithLabelValues(status).Inc()
	fetcherWaitDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// SetPending records the number of awaited ids.
func (m Fetcher) SetPending(n int) {
	fetcherPending.Set(float64(n))
}
