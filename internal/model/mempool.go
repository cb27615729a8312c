package model

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MempoolSummary mirrors getmempoolinfo.
type MempoolSummary struct {
	Loaded        bool           `json:"loaded"`
	Size          uint64         `json:"size"`
	Bytes         uint64         `json:"bytes"`
	Usage         uint64         `json:"usage"`
	TotalFee      btcutil.Amount `json:"total_fee"`
	MaxMempool    uint64         `json:"max_mempool"`
	MempoolMinFee btcutil.Amount `json:"mempool_min_fee"`
	MinRelayTxFee btcutil.Amount `json:"min_relay_tx_fee"`
	FullRBF       bool           `json:"full_rbf"`
}

// MempoolEntry is one sampled mempool transaction.
type MempoolEntry struct {
	TxID          chainhash.Hash `json:"txid"`
	BaseFee       btcutil.Amount `json:"base_fee"`
	ModifiedFee   btcutil.Amount `json:"modified_fee"`
	AncestorFee   btcutil.Amount `json:"ancestor_fee"`
	DescendantFee btcutil.Amount `json:"descendant_fee"`
	VSize         uint32         `json:"vsize"`
	Time          time.Time      `json:"time"`
	Height        uint64         `json:"height"`
	RBF           bool           `json:"rbf"`
	Dust          bool           `json:"dust"`
}

// FeeRateBuckets is the number of fee-rate histogram buckets, overflow included.
const FeeRateBuckets = 8

// MempoolDistribution is the aggregate over the sampled entries. It is a
// comparable value and is always replaced whole.
type MempoolDistribution struct {
	// Count includes dust entries.
	Count     int `json:"count"`
	DustCount int `json:"dust_count"`

	// Everything below is computed over non-dust entries only.
	Small            int                 `json:"small"`
	Medium           int                 `json:"medium"`
	Large            int                 `json:"large"`
	Young            int                 `json:"young"`
	Moderate         int                 `json:"moderate"`
	Old              int                 `json:"old"`
	RBF              int                 `json:"rbf"`
	NonRBF           int                 `json:"non_rbf"`
	TotalFee         btcutil.Amount      `json:"total_fee"`
	TotalVSize       uint64              `json:"total_vsize"`
	AverageFee       float64             `json:"average_fee"`
	MedianFee        float64             `json:"median_fee"`
	AverageFeeRate   float64             `json:"average_fee_rate"`
	FeeRateHistogram [FeeRateBuckets]int `json:"fee_rate_histogram"`
}
