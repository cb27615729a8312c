// Package metrics exposes Prometheus collectors for the node watcher.
package metrics

import "github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/node"

const (
	namespace    = "blockinsight7000"
	unknownLabel = "unknown"
)

func labelOrUnknown(v string) string {
	if v == "" {
		return unknownLabel
	}
	return v
}

func status(err error) string {
	return node.Classify(err)
}
