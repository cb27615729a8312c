// Package node holds the error taxonomy shared by node-facing components.
package node

import (
	"context"
	"errors"
)

var (
	// ErrProtocol marks a response that could not be decoded or had an unexpected shape.
	ErrProtocol = errors.New("unexpected node response")
	// ErrDomain marks a decoded value outside its valid range.
	ErrDomain = errors.New("node value out of range")
)

// Error classes used as metric labels.
const (
	ClassSuccess   = "success"
	ClassCanceled  = "canceled"
	ClassProtocol  = "protocol"
	ClassDomain    = "domain"
	ClassTransport = "transport"
)

// Classify maps err onto the taxonomy. Anything not tagged otherwise is a transport failure.
func Classify(err error) string {
	switch {
	case err == nil:
		return ClassSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ClassCanceled
	case errors.Is(err, ErrProtocol):
		return ClassProtocol
	case errors.Is(err, ErrDomain):
		return ClassDomain
	default:
		return ClassTransport
	}
}
