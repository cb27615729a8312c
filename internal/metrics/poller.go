package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "poller",
		Name:      "polls_total",
		Help:      "Count of domain poll cycles.",
	}, []string{"domain", "network", "status"})

	pollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "poller",
		Name:      "poll_duration_seconds",
		Help:      "Duration of a domain fetch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"domain", "network", "status"})

	cacheWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "poller",
		Name:      "cache_writes_total",
		Help:      "Count of polls that changed the cached value.",
	}, []string{"domain", "network"})
)

// Poller tracks metrics for domain pollers.
type Poller struct {
	network string
}

// NewPoller constructs a Poller with defaults.
func NewPoller(network string) *Poller {
	return &Poller{network: labelOrUnknown(network)}
}

// ObservePoll records one poll cycle.
func (m Poller) ObservePoll(domain string, err error, changed bool, started time.Time) {
	domain = labelOrUnknown(domain)
	s := status(err)
	pollTotal.WithLabelValues(domain, m.network, s).Inc()
	pollDuration.WithLabelValues(domain, m.network, s).Observe(time.Since(started).Seconds())
	if changed {
		cacheWritesTotal.WithLabelValues(domain, m.network).Inc()
	}
}
