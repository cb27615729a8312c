package bitcoin

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCClient is the subset of the btcd rpcclient the source needs.
	RPCClient interface {
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
