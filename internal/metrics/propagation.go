package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var propagationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "propagation",
	Name:      "block_interval_seconds",
	Help:      "Elapsed time between consecutive best-block observations.",
	Buckets:   []float64{1, 10, 30, 60, 120, 300, 600, 900, 1200, 1800, 3600},
}, []string{"network"})

// Propagation tracks block propagation samples.
type Propagation struct {
	network string
}

// NewPropagation constructs a Propagation with defaults.
func NewPropagation(network string) *Propagation {
	return &Propagation{network: labelOrUnknown(network)}
}

// ObserveSample records one propagation sample.
func (m Propagation) ObserveSample(d time.Duration) {
	propagationSeconds.WithLabelValues(m.network).Observe(d.Seconds())
}
