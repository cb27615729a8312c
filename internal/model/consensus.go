package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TipStatus is the getchaintips status of a tip.
type TipStatus string

const (
	TipActive       TipStatus = "active"
	TipValidFork    TipStatus = "valid-fork"
	TipValidHeaders TipStatus = "valid-headers"
	TipHeadersOnly  TipStatus = "headers-only"
	TipInvalid      TipStatus = "invalid"
)

// ChainTip is one entry of getchaintips.
type ChainTip struct {
	Height    uint64         `json:"height"`
	Hash      chainhash.Hash `json:"hash"`
	BranchLen uint64         `json:"branch_len"`
	Status    TipStatus      `json:"status"`
}

// ForkPoint returns the height the tip diverged from the active chain at.
func (t ChainTip) ForkPoint() uint64 {
	if t.BranchLen > t.Height {
		return 0
	}
	return t.Height - t.BranchLen
}

// BranchID identifies a fork branch by its divergence height.
type BranchID uint64

// ForkAlert is the tracked state of one branch.
type ForkAlert struct {
	ID           BranchID  `json:"id"`
	Height       uint64    `json:"height"`
	Length       uint64    `json:"length"`
	FirstSeen    time.Time `json:"first_seen"`
	LastAlert    time.Time `json:"last_alert"`
	Alerting     bool      `json:"alerting"`
	Acknowledged bool      `json:"acknowledged"`
}

// ForkAlertEvent is delivered to an alert sink.
type ForkAlertEvent struct {
	ID     BranchID  `json:"id"`
	Height uint64    `json:"height"`
	Length uint64    `json:"length"`
	At     time.Time `json:"at"`
}

// ForkStatus is a copy of the fork monitor state.
type ForkStatus struct {
	ActiveTip ChainTip    `json:"active_tip"`
	Branches  []ForkAlert `json:"branches"`
	Reorgs    uint64      `json:"reorgs"`
}

// HeightAlarmEvent is delivered when the chain reaches an alarm target.
type HeightAlarmEvent struct {
	Start  uint64    `json:"start"`
	Target uint64    `json:"target"`
	Height uint64    `json:"height"`
	At     time.Time `json:"at"`
}

// HeightAlarmStatus is a copy of the block-height alarm state.
type HeightAlarmStatus struct {
	Armed   bool      `json:"armed"`
	Start   uint64    `json:"start"`
	Target  uint64    `json:"target"`
	Fired   bool      `json:"fired"`
	FiredAt time.Time `json:"fired_at"`
}
