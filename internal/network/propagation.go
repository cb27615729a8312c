package network

import (
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

// PeerPropagation averages how long after the best block's timestamp the
// Satoshi peers synced to bestHeight last relayed a block. A peer that never
// relayed one counts as zero delay; clock skew never yields a negative delay.
// ok is false when no peer qualifies.
func PeerPropagation(peers []model.Peer, bestHeight uint64, bestTime time.Time) (avg time.Duration, ok bool) {
	var (
		n   int
		sum time.Duration
	)
	for _, p := range peers {
		if !strings.Contains(p.SubVer, "Satoshi") || p.SyncedBlocks < 0 || uint64(p.SyncedBlocks) != bestHeight {
			continue
		}
		n++
		if p.LastBlock.IsZero() || !p.LastBlock.After(bestTime) {
			continue
		}
		sum += p.LastBlock.Sub(bestTime)
	}
	if n == 0 {
		return 0, false
	}
	return sum / time.Duration(n), true
}
