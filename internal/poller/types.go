package poller

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObservePoll(domain string, err error, changed bool, started time.Time)
	}
)
