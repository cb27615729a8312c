package engine

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/blocks"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/cache"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/network"
	"go.uber.org/zap"
)

// Snapshot is a read-only view over every cache plus the derived signals.
// Domains that were never fetched are nil.
type Snapshot struct {
	TakenAt      time.Time                     `json:"taken_at"`
	Chain        *model.ChainSummary           `json:"chain,omitempty"`
	LatestBlock  *model.Block                  `json:"latest_block,omitempty"`
	LatestMiner  string                        `json:"latest_miner,omitempty"`
	HashPhase    *consensus.Phase              `json:"hash_phase,omitempty"`
	Difficulty   *consensus.DifficultyEstimate `json:"difficulty,omitempty"`
	Mempool      *model.MempoolSummary         `json:"mempool,omitempty"`
	Distribution *model.MempoolDistribution    `json:"distribution,omitempty"`
	Network      *model.NetworkSummary         `json:"network,omitempty"`
	Peers        network.PeerStats             `json:"peers"`
	Versions     []model.VersionCount          `json:"versions"`
	NetTotals    *model.NetTotals              `json:"net_totals,omitempty"`
	Forks        model.ForkStatus              `json:"forks"`
	Alarm        *model.HeightAlarmStatus      `json:"alarm,omitempty"`
	History      []model.BlockRecord           `json:"history"`
	Miners       []model.MinerShare            `json:"miners"`
	Propagation  PropagationView               `json:"propagation"`
}

// PropagationView holds the recent block-to-block intervals, newest first,
// and the peer-reported relay delay of the latest block.
type PropagationView struct {
	Samples      []time.Duration `json:"samples"`
	Average      time.Duration   `json:"average"`
	HasAverage   bool            `json:"has_average"`
	PeerDelay    time.Duration   `json:"peer_delay"`
	HasPeerDelay bool            `json:"has_peer_delay"`
}

func read[T any](c *cache.Cache[T]) *T {
	v, ok := c.Read()
	if !ok {
		return nil
	}
	return &v
}

// Snapshot reads every cache once. Each domain is internally consistent;
// different domains may come from different poll cycles.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		TakenAt:      e.now(),
		Chain:        read(e.chain),
		LatestBlock:  read(e.latest),
		Mempool:      read(e.mempoolSummary),
		Distribution: read(e.distribution),
		Network:      read(e.network),
		NetTotals:    read(e.netTotals),
		Forks:        e.monitor.Status(),
		History:      e.history.Records(),
		Miners:       e.history.MinerDistribution(blocks.DefaultTopMiners),
	}

	switch {
	case s.LatestBlock != nil:
		phase := consensus.HashPhase(s.LatestBlock.Height)
		s.HashPhase = &phase
	case s.Chain != nil:
		phase := consensus.HashPhase(s.Chain.Blocks)
		s.HashPhase = &phase
	}
	if len(s.History) > 0 && s.LatestBlock != nil && s.History[0].Hash == s.LatestBlock.Hash {
		s.LatestMiner = s.History[0].Miner
	}
	if w, ok := e.window.Read(); ok {
		est := consensus.EstimateFromWindow(w)
		s.Difficulty = &est
	}
	if peers, ok := e.peers.Read(); ok {
		s.Peers = network.Summarize(peers)
		s.Versions = network.VersionDistribution(peers)
		if s.LatestBlock != nil {
			s.Propagation.PeerDelay, s.Propagation.HasPeerDelay = network.PeerPropagation(peers, s.LatestBlock.Height, s.LatestBlock.Time)
		}
	}
	if e.alarm != nil {
		st := e.alarm.Status()
		s.Alarm = &st
	}

	s.Propagation.Samples = e.tracker.Samples()
	s.Propagation.Average, s.Propagation.HasAverage = e.tracker.Average()
	return s
}

func (e *Engine) logSnapshot(msg string, s Snapshot) {
	fields := []zap.Field{
		zap.Int("history", len(s.History)),
		zap.Int("fork_branches", len(s.Forks.Branches)),
		zap.Uint64("reorgs", s.Forks.Reorgs),
	}
	if s.LatestBlock != nil {
		fields = append(fields,
			zap.Uint64("height", s.LatestBlock.Height),
			zap.String("miner", s.LatestMiner),
		)
	}
	if s.HashPhase != nil {
		fields = append(fields, zap.Float64("epoch_percent", s.HashPhase.Percent))
	}
	if s.Distribution != nil {
		fields = append(fields,
			zap.Int("mempool_sampled", s.Distribution.Count),
			zap.Int("mempool_dust", s.Distribution.DustCount),
		)
	}
	if s.Propagation.HasAverage {
		fields = append(fields, zap.Duration("avg_block_interval", s.Propagation.Average))
	}
	e.logger.Info(msg, fields...)
}
