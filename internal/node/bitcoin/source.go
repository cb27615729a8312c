package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/node"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/pkg/safe"
)

// Source reads every node domain through an RPC client. It never issues a
// call that changes node state.
type Source struct {
	rpc     RPCClient
	payouts *PayoutDecoder
}

// NewSource creates a Source for the given network.
func NewSource(rpc RPCClient, network string) (*Source, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	payouts, err := NewPayoutDecoder(network)
	if err != nil {
		return nil, err
	}
	return &Source{rpc: rpc, payouts: payouts}, nil
}

// ChainSummary returns getblockchaininfo.
func (s *Source) ChainSummary(ctx context.Context) (model.ChainSummary, error) {
	if err := ctx.Err(); err != nil {
		return model.ChainSummary{}, err
	}
	res, err := s.rpc.GetBlockChainInfo()
	if err != nil {
		return model.ChainSummary{}, fmt.Errorf("get blockchain info: %w", err)
	}
	if res == nil {
		return model.ChainSummary{}, fmt.Errorf("get blockchain info: empty result: %w", node.ErrProtocol)
	}
	return ChainSummaryFromResult(*res)
}

// BlockCount returns the height of the best block.
func (s *Source) BlockCount(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	return toUint64("block count", count)
}

func (s *Source) hashAt(height uint64) (*chainhash.Hash, error) {
	h, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height %d: %w: %v", height, node.ErrDomain, err)
	}
	hash, err := s.rpc.GetBlockHash(h)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	if hash == nil {
		return nil, fmt.Errorf("get block hash at height %d: empty result: %w", height, node.ErrProtocol)
	}
	return hash, nil
}

// BlockHashAt returns the hash of the best-chain block at height.
func (s *Source) BlockHashAt(ctx context.Context, height uint64) (chainhash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return chainhash.Hash{}, err
	}
	hash, err := s.hashAt(height)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *hash, nil
}

// BlockAt returns the block at height with its coinbase payout.
func (s *Source) BlockAt(ctx context.Context, height uint64) (model.Block, error) {
	if err := ctx.Err(); err != nil {
		return model.Block{}, err
	}
	hash, err := s.hashAt(height)
	if err != nil {
		return model.Block{}, err
	}
	res, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return model.Block{}, fmt.Errorf("get block %s: %w", hash, err)
	}
	if res == nil {
		return model.Block{}, fmt.Errorf("get block %s: empty result: %w", hash, node.ErrProtocol)
	}
	return BlockFromResult(*res, s.payouts)
}

// HeaderAt returns the block header at height.
func (s *Source) HeaderAt(ctx context.Context, height uint64) (model.BlockHeader, error) {
	if err := ctx.Err(); err != nil {
		return model.BlockHeader{}, err
	}
	hash, err := s.hashAt(height)
	if err != nil {
		return model.BlockHeader{}, err
	}
	res, err := s.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return model.BlockHeader{}, fmt.Errorf("get block header %s: %w", hash, err)
	}
	if res == nil {
		return model.BlockHeader{}, fmt.Errorf("get block header %s: empty result: %w", hash, node.ErrProtocol)
	}
	return HeaderFromResult(*res)
}

// MempoolSummary returns getmempoolinfo.
func (s *Source) MempoolSummary(ctx context.Context) (model.MempoolSummary, error) {
	if err := ctx.Err(); err != nil {
		return model.MempoolSummary{}, err
	}
	var res mempoolInfoResult
	if err := rawCall(s.rpc, "getmempoolinfo", &res); err != nil {
		return model.MempoolSummary{}, err
	}
	return mempoolSummaryFromResult(res)
}

// MempoolTxIDs returns the ids currently in the mempool.
func (s *Source) MempoolTxIDs(ctx context.Context) ([]chainhash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hashes, err := s.rpc.GetRawMempool()
	if err != nil {
		return nil, fmt.Errorf("get raw mempool: %w", err)
	}
	ids := make([]chainhash.Hash, 0, len(hashes))
	for _, h := range hashes {
		if h == nil {
			continue
		}
		ids = append(ids, *h)
	}
	return ids, nil
}

// MempoolEntry returns the details of one mempool transaction.
func (s *Source) MempoolEntry(ctx context.Context, id chainhash.Hash) (model.MempoolEntry, error) {
	if err := ctx.Err(); err != nil {
		return model.MempoolEntry{}, err
	}
	var res mempoolEntryResult
	if err := rawCall(s.rpc, "getmempoolentry", &res, id.String()); err != nil {
		return model.MempoolEntry{}, err
	}
	return mempoolEntryFromResult(id, res)
}

// NetworkSummary returns getnetworkinfo.
func (s *Source) NetworkSummary(ctx context.Context) (model.NetworkSummary, error) {
	if err := ctx.Err(); err != nil {
		return model.NetworkSummary{}, err
	}
	res, err := s.rpc.GetNetworkInfo()
	if err != nil {
		return model.NetworkSummary{}, fmt.Errorf("get network info: %w", err)
	}
	if res == nil {
		return model.NetworkSummary{}, fmt.Errorf("get network info: empty result: %w", node.ErrProtocol)
	}
	return NetworkSummaryFromResult(*res), nil
}

// Peers returns getpeerinfo.
func (s *Source) Peers(ctx context.Context) ([]model.Peer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var res []peerInfoResult
	if err := rawCall(s.rpc, "getpeerinfo", &res); err != nil {
		return nil, err
	}
	peers := make([]model.Peer, 0, len(res))
	for _, p := range res {
		peers = append(peers, peerFromResult(p))
	}
	return peers, nil
}

// NetTotals returns getnettotals.
func (s *Source) NetTotals(ctx context.Context) (model.NetTotals, error) {
	if err := ctx.Err(); err != nil {
		return model.NetTotals{}, err
	}
	res, err := s.rpc.GetNetTotals()
	if err != nil {
		return model.NetTotals{}, fmt.Errorf("get net totals: %w", err)
	}
	if res == nil {
		return model.NetTotals{}, fmt.Errorf("get net totals: empty result: %w", node.ErrProtocol)
	}
	return NetTotalsFromResult(*res), nil
}

// ChainTips returns getchaintips. An empty tip set is a domain error.
func (s *Source) ChainTips(ctx context.Context) ([]model.ChainTip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var res []chainTipResult
	if err := rawCall(s.rpc, "getchaintips", &res); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("getchaintips: no tips: %w", node.ErrDomain)
	}
	tips := make([]model.ChainTip, 0, len(res))
	for _, r := range res {
		tip, err := chainTipFromResult(r)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}
	return tips, nil
}
