// Package blocks keeps the rolling history of recently mined blocks.
package blocks

import (
	"slices"
	"strings"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/cache"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

const (
	DefaultCapacity  = 20
	DefaultTopMiners = 8
)

// History is a newest-first window of block records, safe for concurrent use.
type History struct {
	mu   sync.RWMutex
	ring *cache.Ring[model.BlockRecord]
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{ring: cache.NewRing[model.BlockRecord](capacity)}
}

// Add appends rec. Records at or above rec.Height were replaced by a reorg
// and are dropped first.
func (h *History) Add(rec model.BlockRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for {
		newest, ok := h.ring.Newest()
		if !ok || newest.Height < rec.Height {
			break
		}
		h.ring.PopNewest()
	}
	h.ring.Push(rec)
}

// Records returns the window newest first.
func (h *History) Records() []model.BlockRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ring.Items()
}

// Len is the number of held records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ring.Len()
}

// MinerDistribution returns the top miners by block count over the window.
// Ties are broken by name.
func (h *History) MinerDistribution(top int) []model.MinerShare {
	records := h.Records()
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Miner]++
	}
	shares := make([]model.MinerShare, 0, len(counts))
	for miner, n := range counts {
		shares = append(shares, model.MinerShare{
			Miner:   miner,
			Blocks:  n,
			Percent: float64(n) / float64(len(records)) * 100,
		})
	}
	slices.SortFunc(shares, func(a, b model.MinerShare) int {
		if a.Blocks != b.Blocks {
			return b.Blocks - a.Blocks
		}
		return strings.Compare(a.Miner, b.Miner)
	})
	if top > 0 && len(shares) > top {
		shares = shares[:top]
	}
	return shares
}
