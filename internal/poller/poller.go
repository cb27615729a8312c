// Package poller runs one fetch-write-sleep loop per data domain.
package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/cache"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/clock"
	"go.uber.org/zap"
)

// Poller keeps one cache fresh. A failed fetch leaves the cache untouched and
// never stops the loop.
type Poller[T any] struct {
	name     string
	logger   *zap.Logger
	metrics  Metrics
	fetch    func(context.Context) (T, error)
	cache    *cache.Cache[T]
	interval time.Duration
	sleep    func(context.Context, time.Duration) error
	now      func() time.Time
	onFetch  func(ctx context.Context, v T, changed bool)
}

// Option customizes a Poller.
type Option[T any] func(*Poller[T])

// WithWake lets wake cut the pause between cycles short.
func WithWake[T any](wake <-chan struct{}) Option[T] {
	return func(p *Poller[T]) {
		if wake == nil {
			return
		}
		p.sleep = func(ctx context.Context, d time.Duration) error {
			return clock.SleepOrWake(ctx, d, wake)
		}
	}
}

// WithOnFetch registers fn to run after every successful fetch, changed or not.
func WithOnFetch[T any](fn func(ctx context.Context, v T, changed bool)) Option[T] {
	return func(p *Poller[T]) {
		p.onFetch = fn
	}
}

// WithClock replaces the sleep and now functions.
func WithClock[T any](sleep func(context.Context, time.Duration) error, now func() time.Time) Option[T] {
	return func(p *Poller[T]) {
		if sleep != nil {
			p.sleep = sleep
		}
		if now != nil {
			p.now = now
		}
	}
}

// New builds a poller writing fetch results for domain name into c every interval.
func New[T any](
	name string,
	fetch func(context.Context) (T, error),
	c *cache.Cache[T],
	interval time.Duration,
	metrics Metrics,
	logger *zap.Logger,
	opts ...Option[T],
) (*Poller[T], error) {
	if fetch == nil {
		return nil, errors.New("poller fetch func is required")
	}
	if c == nil {
		return nil, errors.New("poller cache is required")
	}
	if metrics == nil {
		return nil, errors.New("poller metrics is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("poller %s interval must be positive, got %v", name, interval)
	}

	p := &Poller[T]{
		name:     name,
		logger:   logger.With(zap.String("domain", name)),
		metrics:  metrics,
		fetch:    fetch,
		cache:    c,
		interval: interval,
		sleep:    clock.SleepWithContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Poller[T]) Name() string { return p.name }

// Run polls until ctx is canceled and returns the context error.
func (p *Poller[T]) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		started := p.now()
		if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("poll failed, keeping last value", zap.Error(err))
		}

		if err := p.sleep(ctx, clock.Pace(p.interval, p.now().Sub(started))); err != nil {
			return err
		}
	}
}

// Poll runs one fetch and conditional write.
func (p *Poller[T]) Poll(ctx context.Context) error {
	started := p.now()
	v, err := p.fetch(ctx)
	if err != nil {
		p.metrics.ObservePoll(p.name, err, false, started)
		return fmt.Errorf("poll %s: %w", p.name, err)
	}

	changed := p.cache.WriteIfChanged(v)
	p.metrics.ObservePoll(p.name, nil, changed, started)
	if changed {
		p.logger.Debug("cache updated")
	}
	if p.onFetch != nil {
		p.onFetch(ctx, v, changed)
	}
	return nil
}
