package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	p2pMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marabu",
		Subsystem: "p2p",
		Name:      "messages_total",
		Help:      "Count of peer messages by direction and type.",
	}, []string{"direction", "type"})
	p2pPeers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "marabu",
		Subsystem: "p2p",
		Name:      "peers",
		Help:      "Number of connected peers past the handshake.",
	})
	p2pDisconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marabu",
		Subsystem: "p2p",
		Name:      "disconnects_total",
		Help:      "Count of peer disconnects by reason.",
	}, []string{"reason"})
)

// P2P tracks peer traffic.
type P2P struct{}

// NewP2P constructs a P2P metrics collector.
func NewP2P() *P2P {
	return &P2P{}
}

// ObserveMessage counts one message. direction is "in" or "out".
func (m P2P) ObserveMessage(direction, msgType string) {
	if msgType == "" {
		msgType = "unknown"
	}
	p2pMessagesTotal.WithLabelValues(direction, msgType).Inc()
}

// SetPeers records the number of connected peers.
func (m P2P) SetPeers(n int) {
	p2pPeers.Set(float64(n))
}

// ObserveDisconnect counts a dropped connection.
func (m P2P) ObserveDisconnect(reason string) {
	p2pDisconnectsTotal.WithLabelValues(reason).Inc()
}
