// Package network derives peer-level views from getpeerinfo.
package network

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
)

// UnknownVersion groups Satoshi peers whose user agent carries no x.y.z version.
const UnknownVersion = "Unknown"

var satoshiVersion = regexp.MustCompile(`/Satoshi:(\d+\.\d+\.\d+)`)

// NormalizeVersion extracts major.minor.patch from a Satoshi user agent.
func NormalizeVersion(subver string) string {
	m := satoshiVersion.FindStringSubmatch(subver)
	if m == nil {
		return UnknownVersion
	}
	return m[1]
}

// VersionDistribution counts Satoshi peers per client version, most common first.
func VersionDistribution(peers []model.Peer) []model.VersionCount {
	counts := make(map[string]int)
	for _, p := range peers {
		if !strings.Contains(p.SubVer, "Satoshi") {
			continue
		}
		counts[NormalizeVersion(p.SubVer)]++
	}

	out := make([]model.VersionCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, model.VersionCount{Version: v, Peers: n})
	}
	slices.SortFunc(out, func(a, b model.VersionCount) int {
		if a.Peers != b.Peers {
			return b.Peers - a.Peers
		}
		return strings.Compare(b.Version, a.Version)
	})
	return out
}

// PeerStats summarizes the connected peer set.
type PeerStats struct {
	Total       int           `json:"total"`
	Inbound     int           `json:"inbound"`
	Outbound    int           `json:"outbound"`
	AveragePing time.Duration `json:"average_ping"`
}

// Summarize computes PeerStats. Peers without a ping sample are left out of the average.
func Summarize(peers []model.Peer) PeerStats {
	var (
		st     PeerStats
		pinged int
		sum    time.Duration
	)
	for _, p := range peers {
		st.Total++
		if p.Inbound {
			st.Inbound++
		} else {
			st.Outbound++
		}
		if p.PingTime > 0 {
			pinged++
			sum += p.PingTime
		}
	}
	if pinged > 0 {
		st.AveragePing = sum / time.Duration(pinged)
	}
	return st
}
