// Package engine wires the pollers, the mempool sampler and the derived
// trackers around one set of shared caches.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/blocks"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/cache"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/miner"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/poller"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/propagation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Domain names, used as poller names and metric labels.
const (
	DomainChain          = "chain"
	DomainBlock          = "block"
	DomainWindow         = "block_window"
	DomainMempoolSummary = "mempool_summary"
	DomainNetwork        = "network"
	DomainPeers          = "peers"
	DomainNetTotals      = "net_totals"
	DomainTips           = "chain_tips"
)

type pollable interface {
	runner
	Name() string
	Poll(ctx context.Context) error
}

// Option customizes an Engine.
type Option func(*Engine)

// WithBlockSignal wakes the latest-block poller early whenever ch fires.
func WithBlockSignal(ch <-chan struct{}) Option {
	return func(e *Engine) {
		e.blockSignal = ch
	}
}

// Engine owns every cache and the tasks writing them. Readers only ever see
// whole published values.
type Engine struct {
	logger      *zap.Logger
	source      Source
	blockSignal <-chan struct{}
	now         func() time.Time

	chain          *cache.Cache[model.ChainSummary]
	latest         *cache.Cache[model.Block]
	window         *cache.Cache[model.BlockWindow]
	mempoolSummary *cache.Cache[model.MempoolSummary]
	distribution   *cache.Cache[model.MempoolDistribution]
	network        *cache.Cache[model.NetworkSummary]
	peers          *cache.Cache[[]model.Peer]
	netTotals      *cache.Cache[model.NetTotals]
	tips           *cache.Cache[[]model.ChainTip]

	resolver *miner.Resolver
	history  *blocks.History
	tracker  *propagation.Tracker
	monitor  *consensus.ForkMonitor
	alarm    *consensus.HeightAlarm
	sampler  *mempool.Sampler
	pollers  []pollable
}

// New builds an engine. wallets may be nil; sink receives fork alerts and
// the block-height alarm.
func New(
	source Source,
	wallets miner.WalletTable,
	sink consensus.AlertSink,
	cfg Config,
	metrics Metrics,
	logger *zap.Logger,
	opts ...Option,
) (*Engine, error) {
	if source == nil {
		return nil, errors.New("node source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	e := &Engine{
		logger:         logger,
		source:         source,
		now:            time.Now,
		chain:          cache.NewComparable[model.ChainSummary](),
		latest:         cache.New(model.SameBlock),
		window:         cache.NewComparable[model.BlockWindow](),
		mempoolSummary: cache.NewComparable[model.MempoolSummary](),
		distribution:   cache.NewComparable[model.MempoolDistribution](),
		network:        cache.NewComparable[model.NetworkSummary](),
		peers:          cache.New(func(a, b []model.Peer) bool { return slices.Equal(a, b) }),
		netTotals:      cache.NewComparable[model.NetTotals](),
		tips:           cache.New(func(a, b []model.ChainTip) bool { return slices.Equal(a, b) }),
		resolver:       miner.NewResolver(wallets, logger),
		history:        blocks.NewHistory(cfg.HistorySize),
		tracker:        propagation.NewTracker(cfg.PropagationSlots, metrics.Propagation),
	}
	for _, opt := range opts {
		opt(e)
	}

	var err error
	e.monitor, err = consensus.NewForkMonitor(consensus.ForkConfig{
		Threshold: cfg.ForkThreshold,
		Cooldown:  cfg.ForkCooldown,
	}, sink, metrics.Forks, logger)
	if err != nil {
		return nil, err
	}
	if cfg.AlarmBlocks > 0 {
		if e.alarm, err = consensus.NewHeightAlarm(cfg.AlarmBlocks, sink); err != nil {
			return nil, err
		}
	}
	e.sampler, err = mempool.NewSampler(source, e.distribution, mempool.Config{
		Permits:       cfg.MempoolPermits,
		DustThreshold: cfg.DustThreshold,
		Interval:      cfg.Intervals.Mempool,
		MaxEntries:    cfg.MempoolMaxEntries,
	}, metrics.Mempool, logger)
	if err != nil {
		return nil, err
	}

	iv := cfg.Intervals
	err = errors.Join(
		addPoller(e, metrics.Poller, DomainChain, source.ChainSummary, e.chain, iv.Chain,
			poller.WithOnFetch(e.onChain),
		),
		addPoller(e, metrics.Poller, DomainBlock, e.fetchLatestBlock, e.latest, iv.Block,
			poller.WithWake[model.Block](e.blockSignal),
			poller.WithOnFetch(e.onBlock),
		),
		addPoller(e, metrics.Poller, DomainWindow, e.fetchWindow, e.window, iv.Window),
		addPoller(e, metrics.Poller, DomainMempoolSummary, source.MempoolSummary, e.mempoolSummary, iv.MempoolSummary),
		addPoller(e, metrics.Poller, DomainNetwork, source.NetworkSummary, e.network, iv.Network),
		addPoller(e, metrics.Poller, DomainPeers, source.Peers, e.peers, iv.Peers),
		addPoller(e, metrics.Poller, DomainNetTotals, source.NetTotals, e.netTotals, iv.NetTotals),
		addPoller(e, metrics.Poller, DomainTips, source.ChainTips, e.tips, iv.Tips,
			poller.WithOnFetch(e.onTips),
		),
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func addPoller[T any](
	e *Engine,
	metrics poller.Metrics,
	name string,
	fetch func(context.Context) (T, error),
	c *cache.Cache[T],
	interval time.Duration,
	opts ...poller.Option[T],
) error {
	p, err := poller.New(name, fetch, c, interval, metrics, e.logger, opts...)
	if err != nil {
		return err
	}
	e.pollers = append(e.pollers, p)
	return nil
}

// Run starts every poller and the sampler and blocks until ctx is canceled.
// A canceled context is a clean shutdown and yields nil.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("engine started", zap.Int("pollers", len(e.pollers)))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range e.pollers {
		g.Go(func() error { return p.Run(gctx) })
	}
	g.Go(func() error { return e.sampler.Run(gctx) })

	err := g.Wait()
	e.logSnapshot("engine stopped", e.Snapshot())
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// Refresh polls every domain once, in dependency order, then samples the
// mempool once. Failures are joined; a failed domain keeps its last value.
func (e *Engine) Refresh(ctx context.Context) error {
	var errs []error
	for _, p := range e.pollers {
		if err := p.Poll(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := e.sampler.Sample(ctx); err != nil {
		errs = append(errs, fmt.Errorf("sample mempool: %w", err))
	}
	return errors.Join(errs...)
}

// Ready reports whether the chain summary has been published.
func (e *Engine) Ready() bool {
	_, ok := e.chain.Read()
	return ok
}

// View recomputes the mempool distribution for one lens.
func (e *Engine) View(lens mempool.Lens, includeDust bool) model.MempoolDistribution {
	return e.sampler.View(lens, includeDust)
}

// AcknowledgeFork acknowledges the alert of the branch diverging at id.
func (e *Engine) AcknowledgeFork(id model.BranchID) bool {
	return e.monitor.Acknowledge(id)
}

// fetchLatestBlock skips the verbose block call while the best block is unchanged.
func (e *Engine) fetchLatestBlock(ctx context.Context) (model.Block, error) {
	height, err := e.source.BlockCount(ctx)
	if err != nil {
		return model.Block{}, err
	}
	if cur, ok := e.latest.Read(); ok && cur.Height == height {
		hash, err := e.source.BlockHashAt(ctx, height)
		if err != nil {
			return model.Block{}, err
		}
		if hash == cur.Hash {
			return cur, nil
		}
	}
	return e.source.BlockAt(ctx, height)
}

func (e *Engine) onBlock(_ context.Context, b model.Block, changed bool) {
	if !changed {
		return
	}
	seenAt := e.now()
	rec := model.BlockRecord{
		Height: b.Height,
		Hash:   b.Hash,
		Miner:  e.resolver.Resolve(b.Coinbase),
		Time:   b.Time,
	}
	e.history.Add(rec)

	fields := []zap.Field{
		zap.Uint64("height", rec.Height),
		zap.Stringer("hash", rec.Hash),
		zap.String("miner", rec.Miner),
		zap.Uint32("txs", b.TxCount),
	}
	if d, ok := e.tracker.Observe(b.Height, seenAt); ok {
		fields = append(fields, zap.Duration("since_previous", d))
	}
	e.logger.Info("new best block", fields...)
}

// fetchWindow refetches the pinned headers only when the tip height moved.
func (e *Engine) fetchWindow(ctx context.Context) (model.BlockWindow, error) {
	height, err := e.tipHeight(ctx)
	if err != nil {
		return model.BlockWindow{}, err
	}
	if cur, ok := e.window.Read(); ok && cur.Tip.Height == height {
		return cur, nil
	}

	var w model.BlockWindow
	targets := []struct {
		dst    *model.BlockHeader
		height uint64
	}{
		{dst: &w.Tip, height: height},
		{dst: &w.EpochStart, height: consensus.EpochStartHeight(height)},
		{dst: &w.DayAgo, height: consensus.DayAgoHeight(height)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		g.Go(func() error {
			h, err := e.source.HeaderAt(gctx, t.height)
			if err != nil {
				return err
			}
			*t.dst = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.BlockWindow{}, err
	}
	return w, nil
}

func (e *Engine) tipHeight(ctx context.Context) (uint64, error) {
	if b, ok := e.latest.Read(); ok {
		return b.Height, nil
	}
	return e.source.BlockCount(ctx)
}

func (e *Engine) onChain(_ context.Context, c model.ChainSummary, _ bool) {
	if e.alarm == nil {
		return
	}
	if e.alarm.Observe(c.Blocks) {
		e.logger.Info("block height alarm fired", zap.Uint64("height", c.Blocks))
	}
}

func (e *Engine) onTips(_ context.Context, tips []model.ChainTip, _ bool) {
	e.monitor.Observe(tips)
}
