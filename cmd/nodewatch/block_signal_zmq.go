package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-zeromq/zmq4"
	"go.uber.org/zap"
)

const hashBlockTopic = "hashblock"

// startBlockSignal subscribes to the node's hashblock notifications. Each
// notification is collapsed into a single pending wakeup. An empty addr
// disables the signal.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	sub := zmq4.NewSub(ctx)
	if err := sub.Dial(addr); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("connect zmq: %w", err)
	}
	if err := sub.SetOption(zmq4.OptionSubscribe, hashBlockTopic); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe zmq %s: %w", hashBlockTopic, err)
	}

	notify := make(chan struct{}, 1)
	go func() {
		defer sub.Close()
		for {
			msg, err := sub.Recv()
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Warn("zmq recv failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			if len(msg.Frames) < 2 {
				logger.Warn("skip malformed zmq message", zap.Int("parts", len(msg.Frames)))
				continue
			}

			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	logger.Info("subscribed to block notifications", zap.String("addr", addr))
	return notify, nil
}
