package engine

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/poller"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/propagation"
)

type (
	// Source is the read-only node surface the engine polls.
	Source interface {
		ChainSummary(ctx context.Context) (model.ChainSummary, error)
		BlockCount(ctx context.Context) (uint64, error)
		BlockHashAt(ctx context.Context, height uint64) (chainhash.Hash, error)
		BlockAt(ctx context.Context, height uint64) (model.Block, error)
		HeaderAt(ctx context.Context, height uint64) (model.BlockHeader, error)
		MempoolSummary(ctx context.Context) (model.MempoolSummary, error)
		NetworkSummary(ctx context.Context) (model.NetworkSummary, error)
		Peers(ctx context.Context) ([]model.Peer, error)
		NetTotals(ctx context.Context) (model.NetTotals, error)
		ChainTips(ctx context.Context) ([]model.ChainTip, error)
		mempool.Source
	}

	// Metrics bundles the recorders of every engine component.
	Metrics struct {
		Poller      poller.Metrics
		Mempool     mempool.Metrics
		Forks       consensus.Metrics
		Propagation propagation.Metrics
	}

	runner interface {
		Run(ctx context.Context) error
	}
)
