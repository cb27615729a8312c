package mempool

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		MempoolTxIDs(ctx context.Context) ([]chainhash.Hash, error)
		MempoolEntry(ctx context.Context, id chainhash.Hash) (model.MempoolEntry, error)
	}

	Metrics interface {
		ObserveBatch(err error, fetched, failed, pruned, held int, started time.Time)
	}
)
