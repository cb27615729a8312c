// Package bitcoin adapts a Bitcoin Core RPC client to the engine's domain model.
package bitcoin

import (
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/node"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/pkg/safe"
)

// ToAmount converts a BTC value to satoshis, rejecting negatives.
func ToAmount(btc float64) (btcutil.Amount, error) {
	amt, err := btcutil.NewAmount(btc)
	if err != nil {
		return 0, fmt.Errorf("amount %v: %w: %v", btc, node.ErrDomain, err)
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount %d: %w", amt, node.ErrDomain)
	}
	return amt, nil
}

func toUint64[T safe.Integer](field string, v T) (uint64, error) {
	out, err := safe.Uint64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", field, node.ErrDomain, err)
	}
	return out, nil
}

func toUint32[T safe.Integer](field string, v T) (uint32, error) {
	out, err := safe.Uint32(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", field, node.ErrDomain, err)
	}
	return out, nil
}

func parseHash(s string) (chainhash.Hash, error) {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("hash %q: %w: %v", s, node.ErrProtocol, err)
	}
	return *h, nil
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// ChainSummaryFromResult maps getblockchaininfo.
func ChainSummaryFromResult(src btcjson.GetBlockChainInfoResult) (model.ChainSummary, error) {
	blocks, err := toUint64("blocks", src.Blocks)
	if err != nil {
		return model.ChainSummary{}, err
	}
	headers, err := toUint64("headers", src.Headers)
	if err != nil {
		return model.ChainSummary{}, err
	}
	size, err := toUint64("size_on_disk", src.SizeOnDisk)
	if err != nil {
		return model.ChainSummary{}, err
	}

	return model.ChainSummary{
		Chain:                src.Chain,
		Blocks:               blocks,
		Headers:              headers,
		BestBlockHash:        src.BestBlockHash,
		Difficulty:           src.Difficulty,
		MedianTime:           unixTime(src.MedianTime),
		VerificationProgress: src.VerificationProgress,
		InitialBlockDownload: src.InitialBlockDownload,
		Pruned:               src.Pruned,
		SizeOnDisk:           size,
		ChainWork:            src.ChainWork,
	}, nil
}

// HeaderFromResult maps a verbose block header.
func HeaderFromResult(src btcjson.GetBlockHeaderVerboseResult) (model.BlockHeader, error) {
	height, err := toUint64("height", src.Height)
	if err != nil {
		return model.BlockHeader{}, err
	}
	hash, err := parseHash(src.Hash)
	if err != nil {
		return model.BlockHeader{}, err
	}
	return model.BlockHeader{
		Height:     height,
		Hash:       hash,
		Time:       unixTime(src.Time),
		Difficulty: src.Difficulty,
	}, nil
}

// BlockFromResult maps a verbose block with transactions. The coinbase payout is
// extracted with decoder; a payout that cannot be decoded never fails the block.
func BlockFromResult(src btcjson.GetBlockVerboseTxResult, decoder *PayoutDecoder) (model.Block, error) {
	height, err := toUint64("height", src.Height)
	if err != nil {
		return model.Block{}, err
	}
	hash, err := parseHash(src.Hash)
	if err != nil {
		return model.Block{}, err
	}
	var prev chainhash.Hash
	if src.PreviousHash != "" {
		if prev, err = parseHash(src.PreviousHash); err != nil {
			return model.Block{}, err
		}
	}
	size, err := toUint32("size", src.Size)
	if err != nil {
		return model.Block{}, err
	}
	weight, err := toUint32("weight", src.Weight)
	if err != nil {
		return model.Block{}, err
	}
	txCount, err := toUint32("tx count", len(src.Tx))
	if err != nil {
		return model.Block{}, err
	}

	block := model.Block{
		BlockHeader: model.BlockHeader{
			Height:     height,
			Hash:       hash,
			Time:       unixTime(src.Time),
			Difficulty: src.Difficulty,
		},
		PrevHash: prev,
		TxCount:  txCount,
		Size:     size,
		Weight:   weight,
	}
	if len(src.Tx) > 0 && decoder != nil {
		block.Coinbase = decoder.Decode(src.Tx[0])
	}
	return block, nil
}

func mempoolSummaryFromResult(src mempoolInfoResult) (model.MempoolSummary, error) {
	size, err := toUint64("size", src.Size)
	if err != nil {
		return model.MempoolSummary{}, err
	}
	bytes, err := toUint64("bytes", src.Bytes)
	if err != nil {
		return model.MempoolSummary{}, err
	}
	usage, err := toUint64("usage", src.Usage)
	if err != nil {
		return model.MempoolSummary{}, err
	}
	maxMempool, err := toUint64("maxmempool", src.MaxMempool)
	if err != nil {
		return model.MempoolSummary{}, err
	}
	totalFee, err := ToAmount(src.TotalFee)
	if err != nil {
		return model.MempoolSummary{}, err
	}
	minFee, err := ToAmount(src.MempoolMinFee)
	if err != nil {
		return model.MempoolSummary{}, err
	}
	relayFee, err := ToAmount(src.MinRelayTxFee)
	if err != nil {
		return model.MempoolSummary{}, err
	}

	return model.MempoolSummary{
		Loaded:        src.Loaded,
		Size:          size,
		Bytes:         bytes,
		Usage:         usage,
		TotalFee:      totalFee,
		MaxMempool:    maxMempool,
		MempoolMinFee: minFee,
		MinRelayTxFee: relayFee,
		FullRBF:       src.FullRBF,
	}, nil
}

func mempoolEntryFromResult(id chainhash.Hash, src mempoolEntryResult) (model.MempoolEntry, error) {
	vsize, err := toUint32("vsize", src.VSize)
	if err != nil {
		return model.MempoolEntry{}, err
	}
	if vsize == 0 {
		return model.MempoolEntry{}, fmt.Errorf("tx %s zero vsize: %w", id, node.ErrDomain)
	}
	height, err := toUint64("height", src.Height)
	if err != nil {
		return model.MempoolEntry{}, err
	}

	fees := [4]btcutil.Amount{}
	for i, v := range [4]float64{src.Fees.Base, src.Fees.Modified, src.Fees.Ancestor, src.Fees.Descendant} {
		if fees[i], err = ToAmount(v); err != nil {
			return model.MempoolEntry{}, fmt.Errorf("tx %s fee: %w", id, err)
		}
	}

	return model.MempoolEntry{
		TxID:          id,
		BaseFee:       fees[0],
		ModifiedFee:   fees[1],
		AncestorFee:   fees[2],
		DescendantFee: fees[3],
		VSize:         vsize,
		Time:          unixTime(src.Time),
		Height:        height,
		RBF:           src.Replaceable,
	}, nil
}

// NetworkSummaryFromResult maps getnetworkinfo.
func NetworkSummaryFromResult(src btcjson.GetNetworkInfoResult) model.NetworkSummary {
	return model.NetworkSummary{
		Version:         src.Version,
		SubVersion:      src.SubVersion,
		ProtocolVersion: src.ProtocolVersion,
		Connections:     src.Connections,
		NetworkActive:   src.NetworkActive,
		RelayFee:        src.RelayFee,
		Warnings:        strings.Join(src.Warnings, "; "),
	}
}

// peerFromResult maps one getpeerinfo entry.
func peerFromResult(src peerInfoResult) model.Peer {
	return model.Peer{
		ID:             src.ID,
		Addr:           src.Addr,
		SubVer:         src.SubVer,
		Inbound:        src.Inbound,
		Version:        src.Version,
		PingTime:       time.Duration(src.PingTime * float64(time.Second)),
		BytesSent:      src.BytesSent,
		BytesRecv:      src.BytesRecv,
		StartingHeight: src.StartingHeight,
		ConnectedAt:    unixTime(src.ConnTime),
		LastBlock:      unixTime(src.LastBlock),
		SyncedBlocks:   src.SyncedBlocks,
	}
}

// NetTotalsFromResult maps getnettotals.
func NetTotalsFromResult(src btcjson.GetNetTotalsResult) model.NetTotals {
	var at time.Time
	if src.TimeMillis > 0 {
		at = time.UnixMilli(src.TimeMillis).UTC()
	}
	return model.NetTotals{
		BytesRecv: src.TotalBytesRecv,
		BytesSent: src.TotalBytesSent,
		Time:      at,
	}
}

func chainTipFromResult(src chainTipResult) (model.ChainTip, error) {
	height, err := toUint64("tip height", src.Height)
	if err != nil {
		return model.ChainTip{}, err
	}
	branchLen, err := toUint64("branchlen", src.BranchLen)
	if err != nil {
		return model.ChainTip{}, err
	}
	hash, err := parseHash(src.Hash)
	if err != nil {
		return model.ChainTip{}, err
	}

	status := model.TipStatus(src.Status)
	switch status {
	case model.TipActive, model.TipValidFork, model.TipValidHeaders, model.TipHeadersOnly, model.TipInvalid:
	default:
		return model.ChainTip{}, fmt.Errorf("tip %s status %q: %w", hash, src.Status, node.ErrProtocol)
	}

	return model.ChainTip{
		Height:    height,
		Hash:      hash,
		BranchLen: branchLen,
		Status:    status,
	}, nil
}
