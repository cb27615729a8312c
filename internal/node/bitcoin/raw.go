package bitcoin

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	gojson "github.com/goccy/go-json"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/node"
)

// Results btcjson does not model the way bitcoind returns them.

type mempoolInfoResult struct {
	Loaded        bool    `json:"loaded"`
	Size          int64   `json:"size"`
	Bytes         int64   `json:"bytes"`
	Usage         int64   `json:"usage"`
	TotalFee      float64 `json:"total_fee"`
	MaxMempool    int64   `json:"maxmempool"`
	MempoolMinFee float64 `json:"mempoolminfee"`
	MinRelayTxFee float64 `json:"minrelaytxfee"`
	FullRBF       bool    `json:"fullrbf"`
}

type mempoolFees struct {
	Base       float64 `json:"base"`
	Modified   float64 `json:"modified"`
	Ancestor   float64 `json:"ancestor"`
	Descendant float64 `json:"descendant"`
}

type mempoolEntryResult struct {
	VSize       int64       `json:"vsize"`
	Time        int64       `json:"time"`
	Height      int64       `json:"height"`
	Fees        mempoolFees `json:"fees"`
	Replaceable bool        `json:"bip125-replaceable"`
}

// peerInfoResult adds the sync fields bitcoind reports to the btcd result.
type peerInfoResult struct {
	btcjson.GetPeerInfoResult
	LastBlock    int64 `json:"last_block"`
	SyncedBlocks int64 `json:"synced_blocks"`
}

type chainTipResult struct {
	Height    int64  `json:"height"`
	Hash      string `json:"hash"`
	BranchLen int64  `json:"branchlen"`
	Status    string `json:"status"`
}

// rawCall issues method with params and decodes the result into out.
func rawCall(rpc RPCClient, method string, out any, params ...any) error {
	encoded := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, err := gojson.Marshal(p)
		if err != nil {
			return fmt.Errorf("%s: encode param: %w", method, err)
		}
		encoded = append(encoded, b)
	}

	res, err := rpc.RawRequest(method, encoded)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err := gojson.Unmarshal(res, out); err != nil {
		return fmt.Errorf("%s: decode %w: %v", method, node.ErrProtocol, err)
	}
	return nil
}
