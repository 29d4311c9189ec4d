package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainTipHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "marabu",
		Subsystem: "chain",
		Name:      "tip_height",
		Help:      "Height of the current chain tip.",
	})
	chainReorgsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marabu",
		Subsystem: "chain",
		Name:      "reorgs_total",
		Help:      "Count of chain reorganizations.",
	})
	chainReorgDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "marabu",
		Subsystem: "chain",
		Name:      "reorg_depth_blocks",
		Help:      "Blocks abandoned by each reorganization.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 50, 100},
	})
	chainMempoolSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "marabu",
		Subsystem: "chain",
		Name:      "mempool_transactions",
		Help:      "Number of transactions in the mempool.",
	})
)

// Chain tracks tip, reorg and mempool state.
type Chain struct{}

// NewChain constructs a Chain metrics collector.
func NewChain() *Chain {
	return &Chain{}
}

// SetTip records the height of a new tip.
func (m Chain) SetTip(height uint64) {
	chainTipHeight.Set(float64(height))
}

// ObserveReorg records a reorganization that abandoned depth blocks.
func (m Chain) ObserveReorg(depth int) {
	chainReorgsTotal.Inc()
	chainReorgDepth.Observe(float64(depth))
}

// SetMempoolSize records the number of pending transactions.
func (m Chain) SetMempoolSize(n int) {
	chainMempoolSize.Set(float64(n))
}
