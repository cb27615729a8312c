package consensus

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

// HeightAlarm fires once when the chain has grown a set number of blocks past
// the first height it observed.
type HeightAlarm struct {
	blocks uint64
	sink   AlertSink
	now    func() time.Time

	mu     sync.Mutex
	status model.HeightAlarmStatus
}

// NewHeightAlarm arms an alarm blocks ahead of the next observed height.
func NewHeightAlarm(blocks uint64, sink AlertSink) (*HeightAlarm, error) {
	if blocks == 0 {
		return nil, errors.New("alarm block count must be positive")
	}
	if sink == nil {
		return nil, errors.New("alert sink is required")
	}
	return &HeightAlarm{blocks: blocks, sink: sink, now: time.Now}, nil
}

// Observe records the current best height and reports whether the alarm fired on it.
func (a *HeightAlarm) Observe(height uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.status.Armed {
		a.status.Armed = true
		a.status.Start = height
		a.status.Target = height + a.blocks
		if a.status.Target < height {
			a.status.Target = math.MaxUint64
		}
		return false
	}
	if a.status.Fired || height < a.status.Target {
		return false
	}

	a.status.Fired = true
	a.status.FiredAt = a.now()
	a.sink.HeightReached(model.HeightAlarmEvent{
		Start:  a.status.Start,
		Target: a.status.Target,
		Height: height,
		At:     a.status.FiredAt,
	})
	return true
}

func (a *HeightAlarm) Status() model.HeightAlarmStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}
