package miner

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Wallets is an in-memory WalletTable.
type Wallets map[string]string

func (w Wallets) Lookup(address string) (string, bool) {
	name, ok := w[address]
	return name, ok
}

type walletRecord struct {
	Name   string `yaml:"name"`
	Wallet string `yaml:"wallet"`
}

// LoadWallets reads a list of {name, wallet} records.
func LoadWallets(path string) (Wallets, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallets file: %w", err)
	}
	return ParseWallets(raw)
}

// ParseWallets decodes wallet records. Later records override earlier ones.
func ParseWallets(raw []byte) (Wallets, error) {
	var records []walletRecord
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode wallets: %w", err)
	}

	out := make(Wallets, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		wallet := strings.TrimSpace(rec.Wallet)
		if name == "" || wallet == "" {
			return nil, fmt.Errorf("wallet record %d: name and wallet are required", i)
		}
		out[wallet] = name
	}
	return out, nil
}
