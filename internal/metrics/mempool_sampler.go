package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	samplerBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mempool_sampler",
		Name:      "batches_total",
		Help:      "Count of mempool sampling batches.",
	}, []string{"network", "status"})

	samplerBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mempool_sampler",
		Name:      "batch_duration_seconds",
		Help:      "Duration of a mempool sampling batch.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"network", "status"})

	samplerEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mempool_sampler",
		Name:      "entries_total",
		Help:      "Count of mempool entries by outcome.",
	}, []string{"network", "outcome"})

	samplerHeldEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "mempool_sampler",
		Name:      "held_entries",
		Help:      "Number of entries held after the last batch.",
	}, []string{"network"})
)

// MempoolSampler tracks metrics for the mempool sampling pipeline.
type MempoolSampler struct {
	network string
}

// NewMempoolSampler constructs a MempoolSampler with defaults.
func NewMempoolSampler(network string) *MempoolSampler {
	return &MempoolSampler{network: labelOrUnknown(network)}
}

// ObserveBatch records one sampling batch.
func (m MempoolSampler) ObserveBatch(err error, fetched, failed, pruned, held int, started time.Time) {
	s := status(err)
	samplerBatchTotal.WithLabelValues(m.network, s).Inc()
	samplerBatchDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	samplerEntriesTotal.WithLabelValues(m.network, "fetched").Add(float64(fetched))
	samplerEntriesTotal.WithLabelValues(m.network, "failed").Add(float64(failed))
	samplerEntriesTotal.WithLabelValues(m.network, "pruned").Add(float64(pruned))
	samplerHeldEntries.WithLabelValues(m.network).Set(float64(held))
}
