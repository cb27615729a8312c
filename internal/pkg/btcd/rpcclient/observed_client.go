// Package rpcclient wraps the btcd RPC client with pacing and metrics.
package rpcclient

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"go.uber.org/ratelimit"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Client is the part of *rpcclient.Client the watcher calls.
	Client interface {
		GetBlockChainInfo() (*btcjson.GetBlockChainInfoResult, error)
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockHeaderVerbose(blockHash *chainhash.Hash) (*btcjson.GetBlockHeaderVerboseResult, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawMempool() ([]*chainhash.Hash, error)
		GetNetworkInfo() (*btcjson.GetNetworkInfoResult, error)
		GetNetTotals() (*btcjson.GetNetTotalsResult, error)
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}
)

var _ Client = (*rpcclient.Client)(nil)

// ObservedClient paces calls through a limiter and records their outcome.
type ObservedClient struct {
	client     Client
	limiter    ratelimit.Limiter
	rpcMetrics RPCMetrics
}

// NewObservedClient builds a client issuing at most rps calls per second; rps <= 0 disables pacing.
func NewObservedClient(client Client, rps int, rpcMetrics RPCMetrics) *ObservedClient {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps, ratelimit.WithSlack(rps))
	}
	return &ObservedClient{
		client:     client,
		limiter:    limiter,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) begin() time.Time {
	r.limiter.Take()
	return time.Now()
}

func (r *ObservedClient) GetBlockChainInfo() (res *btcjson.GetBlockChainInfoResult, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getblockchaininfo", err, started)
	}()
	return r.client.GetBlockChainInfo()
}

func (r *ObservedClient) GetBlockCount() (count int64, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getblockcount", err, started)
	}()
	return r.client.GetBlockCount()
}

func (r *ObservedClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getblockhash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

func (r *ObservedClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getblockheader", err, started)
	}()
	return r.client.GetBlockHeaderVerbose(blockHash)
}

func (r *ObservedClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getblock", err, started)
	}()
	return r.client.GetBlockVerboseTx(blockHash)
}

func (r *ObservedClient) GetRawMempool() (hashes []*chainhash.Hash, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getrawmempool", err, started)
	}()
	return r.client.GetRawMempool()
}

func (r *ObservedClient) GetNetworkInfo() (res *btcjson.GetNetworkInfoResult, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getnetworkinfo", err, started)
	}()
	return r.client.GetNetworkInfo()
}

func (r *ObservedClient) GetNetTotals() (res *btcjson.GetNetTotalsResult, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe("getnettotals", err, started)
	}()
	return r.client.GetNetTotals()
}

// RawRequest is labeled with the RPC method name.
func (r *ObservedClient) RawRequest(method string, params []json.RawMessage) (res json.RawMessage, err error) {
	started := r.begin()
	defer func() {
		r.rpcMetrics.Observe(method, err, started)
	}()
	return r.client.RawRequest(method, params)
}
