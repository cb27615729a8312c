// Package consensus derives fork, reorg and difficulty-epoch signals from chain state.
package consensus

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultAlertThreshold = 2
	DefaultAlertCooldown  = 10 * time.Minute
)

// ForkConfig tunes alerting. Both values are product choices.
type ForkConfig struct {
	Threshold uint64
	Cooldown  time.Duration
}

// ForkMonitor tracks non-active branches across chain-tip snapshots.
//
// A branch is keyed by its divergence height. It alerts once when its length
// reaches the threshold, stays quiet while the cooldown runs, and is forgotten
// as soon as a snapshot no longer contains it.
type ForkMonitor struct {
	logger    *zap.Logger
	metrics   Metrics
	sink      AlertSink
	threshold uint64
	cooldown  time.Duration
	now       func() time.Time

	mu         sync.Mutex
	branches   map[model.BranchID]*model.ForkAlert
	active     model.ChainTip
	haveActive bool
	reorgs     uint64
}

// NewForkMonitor builds a monitor delivering events to sink.
func NewForkMonitor(cfg ForkConfig, sink AlertSink, metrics Metrics, logger *zap.Logger) (*ForkMonitor, error) {
	if sink == nil {
		return nil, errors.New("fork alert sink is required")
	}
	if metrics == nil {
		return nil, errors.New("fork monitor metrics is required")
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultAlertThreshold
	}
	if cfg.Cooldown < 0 {
		cfg.Cooldown = DefaultAlertCooldown
	}

	return &ForkMonitor{
		logger:    logger.With(zap.String("component", "fork_monitor")),
		metrics:   metrics,
		sink:      sink,
		threshold: cfg.Threshold,
		cooldown:  cfg.Cooldown,
		now:       time.Now,
		branches:  make(map[model.BranchID]*model.ForkAlert),
	}, nil
}

// Observe applies one getchaintips snapshot.
func (m *ForkMonitor) Observe(tips []model.ChainTip) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if active, ok := activeTip(tips); ok {
		m.checkReorg(active)
		m.active, m.haveActive = active, true
	}

	current := make(map[model.BranchID]model.ChainTip)
	for _, tip := range tips {
		if tip.Status == model.TipActive {
			continue
		}
		id := model.BranchID(tip.ForkPoint())
		if prev, ok := current[id]; !ok || tip.BranchLen > prev.BranchLen {
			current[id] = tip
		}
	}

	for id, st := range m.branches {
		if _, ok := current[id]; ok {
			continue
		}
		delete(m.branches, id)
		if st.LastAlert.IsZero() {
			continue
		}
		m.metrics.ObserveClear()
		m.sink.Clear(event(st, now))
		m.logger.Info("fork branch resolved", zap.Uint64("fork_height", uint64(id)), zap.Uint64("length", st.Length))
	}

	ids := make([]model.BranchID, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		tip := current[id]
		st, ok := m.branches[id]
		if !ok {
			st = &model.ForkAlert{ID: id, FirstSeen: now}
			m.branches[id] = st
		}
		st.Height = tip.Height
		st.Length = tip.BranchLen

		if st.Length < m.threshold {
			st.Alerting = false
			continue
		}
		if !st.LastAlert.IsZero() && now.Sub(st.LastAlert) < m.cooldown {
			continue
		}
		st.Alerting = true
		st.Acknowledged = false
		st.LastAlert = now
		m.metrics.ObserveAlert()
		m.sink.Alert(event(st, now))
		m.logger.Warn("fork branch reached alert threshold",
			zap.Uint64("fork_height", uint64(id)),
			zap.Uint64("tip_height", st.Height),
			zap.Uint64("length", st.Length),
			zap.String("status", string(tip.Status)),
		)
	}

	m.metrics.SetTracked(len(m.branches))
}

// Acknowledge marks the alert of branch id as seen. It reports false when the
// branch is not alerting.
func (m *ForkMonitor) Acknowledge(id model.BranchID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.branches[id]
	if !ok || !st.Alerting || st.Acknowledged {
		return false
	}
	st.Acknowledged = true
	m.sink.Acknowledge(event(st, m.now()))
	return true
}

// Status returns a copy of the tracked state ordered by divergence height.
func (m *ForkMonitor) Status() model.ForkStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := model.ForkStatus{
		ActiveTip: m.active,
		Branches:  make([]model.ForkAlert, 0, len(m.branches)),
		Reorgs:    m.reorgs,
	}
	for _, st := range m.branches {
		out.Branches = append(out.Branches, *st)
	}
	slices.SortFunc(out.Branches, func(a, b model.ForkAlert) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out
}

// checkReorg flags an active tip that moved down or was replaced at the same height.
func (m *ForkMonitor) checkReorg(active model.ChainTip) {
	if !m.haveActive {
		return
	}
	prev := m.active
	if active.Height > prev.Height || (active.Height == prev.Height && active.Hash == prev.Hash) {
		return
	}
	m.reorgs++
	m.metrics.ObserveReorg()
	m.logger.Warn("active tip reorganized",
		zap.Uint64("from_height", prev.Height),
		zap.Stringer("from_hash", prev.Hash),
		zap.Uint64("to_height", active.Height),
		zap.Stringer("to_hash", active.Hash),
	)
}

func activeTip(tips []model.ChainTip) (model.ChainTip, bool) {
	var (
		best  model.ChainTip
		found bool
	)
	for _, tip := range tips {
		if tip.Status != model.TipActive {
			continue
		}
		if !found || tip.Height > best.Height {
			best, found = tip, true
		}
	}
	return best, found
}

func event(st *model.ForkAlert, at time.Time) model.ForkAlertEvent {
	return model.ForkAlertEvent{ID: st.ID, Height: st.Height, Length: st.Length, At: at}
}

// LogSink writes fork and height alarm events to a logger.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("fork_alerts")}
}

func (s *LogSink) Alert(ev model.ForkAlertEvent) {
	s.logger.Warn("FORK ALERT", eventFields(ev)...)
}

func (s *LogSink) Acknowledge(ev model.ForkAlertEvent) {
	s.logger.Info("fork alert acknowledged", eventFields(ev)...)
}

func (s *LogSink) Clear(ev model.ForkAlertEvent) {
	s.logger.Info("fork alert cleared", eventFields(ev)...)
}

func (s *LogSink) HeightReached(ev model.HeightAlarmEvent) {
	s.logger.Warn("BLOCK HEIGHT ALARM",
		zap.Uint64("height", ev.Height),
		zap.Uint64("target", ev.Target),
		zap.Uint64("start", ev.Start),
		zap.Time("at", ev.At),
	)
}

func eventFields(ev model.ForkAlertEvent) []zap.Field {
	return []zap.Field{
		zap.Uint64("fork_height", uint64(ev.ID)),
		zap.Uint64("tip_height", ev.Height),
		zap.Uint64("length", ev.Length),
		zap.Time("at", ev.At),
	}
}
