package consensus

import "github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// AlertSink is told when a branch alert fires, is acknowledged and clears,
	// and when a block-height alarm goes off.
	AlertSink interface {
		Alert(ev model.ForkAlertEvent)
		Acknowledge(ev model.ForkAlertEvent)
		Clear(ev model.ForkAlertEvent)
		HeightReached(ev model.HeightAlarmEvent)
	}

	Metrics interface {
		ObserveAlert()
		ObserveClear()
		ObserveReorg()
		SetTracked(n int)
	}
)
