// Package propagation measures the interval between best-block observations.
package propagation

import (
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/cache"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// DefaultSlots is the number of samples kept for the rolling average.
const DefaultSlots = 5

type Metrics interface {
	ObserveSample(d time.Duration)
}

// Tracker keeps the last few block-to-block intervals, anchored on the height
// and first-seen time of the most recent block.
type Tracker struct {
	metrics Metrics

	mu       sync.Mutex
	samples  *cache.Ring[time.Duration]
	height   uint64
	seenAt   time.Time
	anchored bool
}

// NewTracker builds a tracker keeping slots samples. A nil metrics is allowed.
func NewTracker(slots int, metrics Metrics) *Tracker {
	if slots <= 0 {
		slots = DefaultSlots
	}
	return &Tracker{metrics: metrics, samples: cache.NewRing[time.Duration](slots)}
}

// Observe records that height was first seen at seenAt. It returns the new
// sample when height advanced past the anchor. Repeats of the anchor height
// are ignored; a lower height re-anchors without a sample.
func (t *Tracker) Observe(height uint64, seenAt time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case !t.anchored, height < t.height:
		t.height, t.seenAt, t.anchored = height, seenAt, true
		return 0, false
	case height == t.height:
		return 0, false
	}

	d := seenAt.Sub(t.seenAt)
	if d < 0 {
		d = 0
	}
	t.samples.Push(d)
	t.height, t.seenAt = height, seenAt
	if t.metrics != nil {
		t.metrics.ObserveSample(d)
	}
	return d, true
}

// Samples returns the held samples, newest first.
func (t *Tracker) Samples() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.samples.Items()
}

// Average is the mean of the held samples.
func (t *Tracker) Average() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.samples.Len()
	if n == 0 {
		return 0, false
	}
	var sum time.Duration
	for _, d := range t.samples.Items() {
		sum += d
	}
	return sum / time.Duration(n), true
}
