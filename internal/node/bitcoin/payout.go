package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/tmthrgd/go-hex"
)

// PayoutDecoder extracts coinbase payout data for miner attribution.
type PayoutDecoder struct {
	params *chaincfg.Params
}

// NewPayoutDecoder initializes a decoder using params of the provided network.
func NewPayoutDecoder(network string) (*PayoutDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &PayoutDecoder{params: params}, nil
}

// Decode returns the payout of a coinbase transaction. Undecodable parts are left
// empty instead of failing.
func (d *PayoutDecoder) Decode(tx btcjson.TxRawResult) (payout model.CoinbasePayout) {
	if len(tx.Vin) > 0 && tx.Vin[0].Coinbase != "" {
		if script, err := hex.DecodeString(tx.Vin[0].Coinbase); err == nil {
			payout.Script = script
		}
	}

	for _, vout := range tx.Vout {
		if amt, err := ToAmount(vout.Value); err == nil {
			payout.Reward += uint64(amt)
		}
		addrs, err := d.addresses(vout)
		if err != nil {
			continue
		}
		payout.Addresses = append(payout.Addresses, addrs...)
	}
	return payout
}

func (d *PayoutDecoder) addresses(vout btcjson.Vout) ([]string, error) {
	if len(vout.ScriptPubKey.Addresses) > 0 {
		return append([]string(nil), vout.ScriptPubKey.Addresses...), nil
	}
	if vout.ScriptPubKey.Address != "" {
		return []string{vout.ScriptPubKey.Address}, nil
	}
	if vout.ScriptPubKey.Hex == "" {
		return nil, nil
	}

	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil, err
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, addr.EncodeAddress())
	}
	return out, nil
}

// ChainParams resolves a network name.
func ChainParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
