package model

import "time"

// NetworkSummary mirrors getnetworkinfo.
type NetworkSummary struct {
	Version         int32   `json:"version"`
	SubVersion      string  `json:"subversion"`
	ProtocolVersion int32   `json:"protocol_version"`
	Connections     int32   `json:"connections"`
	NetworkActive   bool    `json:"network_active"`
	RelayFee        float64 `json:"relay_fee"`
	Warnings        string  `json:"warnings"`
}

// Peer is one connected node.
type Peer struct {
	ID             int32         `json:"id"`
	Addr           string        `json:"addr"`
	SubVer         string        `json:"subver"`
	Inbound        bool          `json:"inbound"`
	Version        uint32        `json:"version"`
	PingTime       time.Duration `json:"ping_time"`
	BytesSent      uint64        `json:"bytes_sent"`
	BytesRecv      uint64        `json:"bytes_recv"`
	StartingHeight int32         `json:"starting_height"`
	ConnectedAt    time.Time     `json:"connected_at"`
	// LastBlock is when the peer last sent us a new block; zero if never.
	LastBlock    time.Time `json:"last_block"`
	SyncedBlocks int64     `json:"synced_blocks"`
}

// VersionCount is the number of peers running one client version.
type VersionCount struct {
	Version string `json:"version"`
	Peers   int    `json:"peers"`
}

// NetTotals mirrors getnettotals.
type NetTotals struct {
	BytesRecv uint64    `json:"bytes_recv"`
	BytesSent uint64    `json:"bytes_sent"`
	Time      time.Time `json:"time"`
}
