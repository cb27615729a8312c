package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/blocks"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/propagation"
)

// Intervals are the target cadences of every polled domain.
type Intervals struct {
	Chain          time.Duration
	Block          time.Duration
	Window         time.Duration
	MempoolSummary time.Duration
	Mempool        time.Duration
	Network        time.Duration
	Peers          time.Duration
	NetTotals      time.Duration
	Tips           time.Duration
}

// Config tunes the engine.
type Config struct {
	Intervals         Intervals
	MempoolPermits    int
	MempoolMaxEntries int
	DustThreshold     btcutil.Amount
	HistorySize       int
	PropagationSlots  int
	ForkThreshold     uint64
	ForkCooldown      time.Duration
	// AlarmBlocks arms a block-height alarm that many blocks past the first
	// observed height; zero disables it.
	AlarmBlocks uint64
}

// DefaultConfig returns the cadences and limits used against a mainnet node.
func DefaultConfig() Config {
	return Config{
		Intervals: Intervals{
			Chain:          2 * time.Second,
			Block:          2 * time.Second,
			Window:         2 * time.Second,
			MempoolSummary: 3 * time.Second,
			Mempool:        3 * time.Second,
			Network:        7 * time.Second,
			Peers:          7 * time.Second,
			NetTotals:      7 * time.Second,
			Tips:           10 * time.Second,
		},
		MempoolPermits:    mempool.DefaultPermits,
		MempoolMaxEntries: mempool.DefaultMaxEntries,
		DustThreshold:     mempool.DefaultDustThreshold,
		HistorySize:       blocks.DefaultCapacity,
		PropagationSlots:  propagation.DefaultSlots,
		ForkThreshold:     consensus.DefaultAlertThreshold,
		ForkCooldown:      consensus.DefaultAlertCooldown,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	for name, d := range map[string]time.Duration{
		"chain":           c.Intervals.Chain,
		"block":           c.Intervals.Block,
		"window":          c.Intervals.Window,
		"mempool summary": c.Intervals.MempoolSummary,
		"mempool":         c.Intervals.Mempool,
		"network":         c.Intervals.Network,
		"peers":           c.Intervals.Peers,
		"net totals":      c.Intervals.NetTotals,
		"tips":            c.Intervals.Tips,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s interval must be positive, got %v", name, d))
		}
	}
	if c.MempoolPermits <= 0 {
		errs = append(errs, fmt.Errorf("mempool permits must be positive, got %d", c.MempoolPermits))
	}
	if c.MempoolMaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("mempool max entries must be positive, got %d", c.MempoolMaxEntries))
	}
	if c.DustThreshold < 0 {
		errs = append(errs, fmt.Errorf("dust threshold must not be negative, got %d", int64(c.DustThreshold)))
	}
	if c.HistorySize <= 0 {
		errs = append(errs, fmt.Errorf("history size must be positive, got %d", c.HistorySize))
	}
	if c.PropagationSlots <= 0 {
		errs = append(errs, fmt.Errorf("propagation slots must be positive, got %d", c.PropagationSlots))
	}
	if c.ForkThreshold == 0 {
		errs = append(errs, errors.New("fork threshold must be positive"))
	}
	if c.ForkCooldown < 0 {
		errs = append(errs, fmt.Errorf("fork cooldown must not be negative, got %v", c.ForkCooldown))
	}
	return errors.Join(errs...)
}
