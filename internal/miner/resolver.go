// Package miner attributes blocks to mining pools from coinbase payout data.
package miner

import (
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"go.uber.org/zap"
)

// Unknown is returned when neither the wallet table nor the tags match.
const Unknown = "Unknown"

// WalletTable maps payout addresses to miner identities.
type WalletTable interface {
	Lookup(address string) (string, bool)
}

// Resolver attributes a coinbase payout to a miner. The zero value has no
// wallet table and resolves from tags only.
type Resolver struct {
	wallets WalletTable
	logger  *zap.Logger
}

func NewResolver(wallets WalletTable, logger *zap.Logger) *Resolver {
	return &Resolver{wallets: wallets, logger: logger}
}

// Resolve returns the miner identity for payout. It never panics and never
// returns an empty string.
func (r *Resolver) Resolve(payout model.CoinbasePayout) (identity string) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.logger != nil {
				r.logger.Error("miner attribution panicked", zap.Any("panic", rec))
			}
			identity = Unknown
		}
	}()

	if r.wallets != nil {
		for _, addr := range payout.Addresses {
			if name, ok := r.wallets.Lookup(addr); ok && name != "" {
				return name
			}
		}
	}
	if label, ok := classify(sanitize(payout.Script)); ok {
		return label
	}
	return Unknown
}

// classify matches the sanitized script against the composite pools first,
// then the primary tag table.
func classify(script string) (string, bool) {
	for _, pool := range compositePools {
		end, ok := bannerEnd(script, pool.banners)
		if !ok {
			continue
		}
		if upstream, ok := matchPrimary(script[end:]); ok {
			return upstream + " (via " + pool.label + ")", true
		}
		return pool.label, true
	}
	return matchPrimary(script)
}

// bannerEnd returns the offset just past the first banner found, trying the
// banners in order.
func bannerEnd(script string, banners []string) (int, bool) {
	for _, b := range banners {
		if i := strings.Index(script, b); i >= 0 {
			return i + len(b), true
		}
	}
	return 0, false
}

func matchPrimary(s string) (string, bool) {
	for _, rule := range primaryTags {
		for _, p := range rule.patterns {
			if strings.Contains(s, p) {
				return rule.label, true
			}
		}
	}
	return "", false
}

// sanitize folds ASCII letters to lower case and drops every byte that is not
// a letter or digit.
func sanitize(script []byte) string {
	var b strings.Builder
	b.Grow(len(script))
	for _, c := range script {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		}
	}
	return b.String()
}
