package transport

import (
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/engine"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Engine is the read side of the orchestrator plus fork acknowledgement.
	Engine interface {
		Snapshot() engine.Snapshot
		View(lens mempool.Lens, includeDust bool) model.MempoolDistribution
		AcknowledgeFork(id model.BranchID) bool
		Ready() bool
	}
)
