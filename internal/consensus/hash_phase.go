package consensus

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

const (
	// EpochLength is the number of blocks between difficulty adjustments.
	EpochLength uint64 = 2016
	// BlocksPerDay at the target spacing.
	BlocksPerDay uint64 = 144

	targetSpacing = 10 * time.Minute
)

// Phase is the position of a height inside its difficulty epoch.
type Phase struct {
	Percent         float64 `json:"percent"`
	BlocksRemaining uint64  `json:"blocks_remaining"`
	Epoch           uint64  `json:"epoch"`
	EpochStart      uint64  `json:"epoch_start"`
}

// HashPhase places height h in its epoch. Height 0 sits at position 0.
func HashPhase(h uint64) Phase {
	var pos, epoch uint64
	if h > 0 {
		pos = (h - 1) % EpochLength
		epoch = (h - 1) / EpochLength
	}
	return Phase{
		Percent:         float64(pos) / float64(EpochLength) * 100,
		BlocksRemaining: EpochLength - pos - 1,
		Epoch:           epoch,
		EpochStart:      epoch * EpochLength,
	}
}

// EpochStartHeight returns the first height of the epoch containing h.
func EpochStartHeight(h uint64) uint64 {
	return HashPhase(h).EpochStart
}

// DayAgoHeight returns the height roughly one day of blocks before h.
func DayAgoHeight(h uint64) uint64 {
	if h < BlocksPerDay-1 {
		return 0
	}
	return h - (BlocksPerDay - 1)
}

// EstimateDifficultyChange returns the expected adjustment, in percent, if blocks
// kept arriving at the pace of the last n blocks mined over elapsed.
func EstimateDifficultyChange(n uint64, elapsed time.Duration) (float64, bool) {
	if n == 0 || elapsed <= 0 {
		return 0, false
	}
	expected := time.Duration(n) * targetSpacing
	return (expected.Seconds()/elapsed.Seconds() - 1) * 100, true
}

// DifficultyEstimate holds the epoch and trailing-day estimates.
type DifficultyEstimate struct {
	Epoch   float64 `json:"epoch"`
	EpochOK bool    `json:"epoch_ok"`
	Day     float64 `json:"day"`
	DayOK   bool    `json:"day_ok"`
}

// EstimateFromWindow derives both estimates from the pinned headers.
func EstimateFromWindow(w model.BlockWindow) DifficultyEstimate {
	var out DifficultyEstimate
	if w.Tip.Height > w.EpochStart.Height {
		out.Epoch, out.EpochOK = EstimateDifficultyChange(w.Tip.Height-w.EpochStart.Height, w.Tip.Time.Sub(w.EpochStart.Time))
	}
	if w.Tip.Height > w.DayAgo.Height {
		out.Day, out.DayOK = EstimateDifficultyChange(w.Tip.Height-w.DayAgo.Height, w.Tip.Time.Sub(w.DayAgo.Time))
	}
	return out
}
