package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	forkEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fork_monitor",
		Name:      "events_total",
		Help:      "Count of fork monitor events by kind.",
	}, []string{"network", "event"})

	forkTrackedBranches = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "fork_monitor",
		Name:      "tracked_branches",
		Help:      "Number of non-active branches currently tracked.",
	}, []string{"network"})
)

// ForkMonitor tracks metrics for the fork monitor.
type ForkMonitor struct {
	network string
}

// NewForkMonitor constructs a ForkMonitor with defaults.
func NewForkMonitor(network string) *ForkMonitor {
	return &ForkMonitor{network: labelOrUnknown(network)}
}

func (m ForkMonitor) ObserveAlert() {
	forkEventsTotal.WithLabelValues(m.network, "alert").Inc()
}

func (m ForkMonitor) ObserveClear() {
	forkEventsTotal.WithLabelValues(m.network, "clear").Inc()
}

func (m ForkMonitor) ObserveReorg() {
	forkEventsTotal.WithLabelValues(m.network, "reorg").Inc()
}

// SetTracked records how many branches are tracked after a snapshot.
func (m ForkMonitor) SetTracked(n int) {
	forkTrackedBranches.WithLabelValues(m.network).Set(float64(n))
}
