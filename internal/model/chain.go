// Package model defines the node state domains held in memory.
package model

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goccy/go-json"
	"github.com/tmthrgd/go-hex"
)

// ChainSummary is the node's view of its best chain.
type ChainSummary struct {
	Chain                string    `json:"chain"`
	Blocks               uint64    `json:"blocks"`
	Headers              uint64    `json:"headers"`
	BestBlockHash        string    `json:"best_block_hash"`
	Difficulty           float64   `json:"difficulty"`
	MedianTime           time.Time `json:"median_time"`
	VerificationProgress float64   `json:"verification_progress"`
	InitialBlockDownload bool      `json:"initial_block_download"`
	Pruned               bool      `json:"pruned"`
	SizeOnDisk           uint64    `json:"size_on_disk"`
	ChainWork            string    `json:"chain_work"`
}

// BlockHeader carries the header fields the engine derives signals from.
type BlockHeader struct {
	Height     uint64         `json:"height"`
	Hash       chainhash.Hash `json:"hash"`
	Time       time.Time      `json:"time"`
	Difficulty float64        `json:"difficulty"`
}

// Block is the latest best block with its coinbase payout.
type Block struct {
	BlockHeader
	PrevHash chainhash.Hash `json:"prev_hash"`
	TxCount  uint32         `json:"tx_count"`
	Size     uint32         `json:"size"`
	Weight   uint32         `json:"weight"`
	Coinbase CoinbasePayout `json:"coinbase"`
}

// CoinbasePayout holds what miner attribution needs from a block's first transaction.
type CoinbasePayout struct {
	Addresses []string `json:"addresses"`
	// Script is the raw coinbase scriptSig; nil when it could not be decoded.
	Script HexBytes `json:"script"`
	Reward uint64   `json:"reward"`
}

// HexBytes is raw script data rendered as a hex string.
type HexBytes []byte

func (b HexBytes) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + hex.EncodeToString(b) + `"`), nil
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*b = nil
		return nil
	}
	raw, err := hex.DecodeString(*s)
	if err != nil {
		return fmt.Errorf("script hex: %w", err)
	}
	*b = raw
	return nil
}

// SameBlock reports whether a and b describe the same block.
func SameBlock(a, b Block) bool {
	return a.Height == b.Height && a.Hash == b.Hash
}

// BlockWindow pins the headers used for difficulty estimates.
type BlockWindow struct {
	Tip        BlockHeader `json:"tip"`
	EpochStart BlockHeader `json:"epoch_start"`
	DayAgo     BlockHeader `json:"day_ago"`
}

// BlockRecord is one entry of the rolling block history.
type BlockRecord struct {
	Height uint64         `json:"height"`
	Hash   chainhash.Hash `json:"hash"`
	Miner  string         `json:"miner"`
	Time   time.Time      `json:"time"`
}

// MinerShare is a miner's share of blocks over the history window.
type MinerShare struct {
	Miner   string  `json:"miner"`
	Blocks  int     `json:"blocks"`
	Percent float64 `json:"percent"`
}
