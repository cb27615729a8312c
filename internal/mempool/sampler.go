// Package mempool keeps an incrementally sampled view of the node mempool.
package mempool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dolthub/swiss"
	"github.com/floatdrop/lru"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/cache"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/pkg/workerpool"
	"go.uber.org/zap"
)

// DefaultDustThreshold is the largest base fee, in satoshis, still treated as dust.
const DefaultDustThreshold btcutil.Amount = 546

const (
	DefaultPermits = 10
	// DefaultMaxEntries bounds the held entries, dust included.
	DefaultMaxEntries = 100_000

	failureMemory = 4096
	// publishEvery is how many new entries are fetched between intermediate
	// publishes, so a large first load shows progress.
	publishEvery = 1000
)

// Config tunes a Sampler.
type Config struct {
	Permits       int
	DustThreshold btcutil.Amount
	Interval      time.Duration
	MaxEntries    int
}

// BatchResult summarizes one Sample call.
type BatchResult struct {
	Fetched int
	Failed  int
	Pruned  int
	Held    int
	// Skipped counts new ids left unfetched because the sampler was full.
	Skipped int
}

// Sampler fetches details only for transactions it has not seen yet, prunes
// what left the mempool and republishes the distribution after every batch.
type Sampler struct {
	logger   *zap.Logger
	metrics  Metrics
	source   Source
	permits  int
	dust     btcutil.Amount
	interval time.Duration
	capacity int
	sleep    func(context.Context, time.Duration) error
	now      func() time.Time

	mu      sync.RWMutex
	entries *swiss.Map[chainhash.Hash, model.MempoolEntry]

	// touched only from workerpool's serialized error callback
	failures *lru.LRU[chainhash.Hash, struct{}]

	distribution *cache.Cache[model.MempoolDistribution]
}

// NewSampler builds a Sampler publishing into distribution.
func NewSampler(
	source Source,
	distribution *cache.Cache[model.MempoolDistribution],
	cfg Config,
	metrics Metrics,
	logger *zap.Logger,
) (*Sampler, error) {
	if source == nil {
		return nil, errors.New("mempool source is required")
	}
	if distribution == nil {
		return nil, errors.New("mempool distribution cache is required")
	}
	if metrics == nil {
		return nil, errors.New("mempool sampler metrics is required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("mempool sample interval must be positive, got %v", cfg.Interval)
	}
	if cfg.Permits <= 0 {
		cfg.Permits = DefaultPermits
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.DustThreshold < 0 {
		cfg.DustThreshold = DefaultDustThreshold
	}

	return &Sampler{
		logger:       logger.With(zap.String("component", "mempool_sampler")),
		metrics:      metrics,
		source:       source,
		permits:      cfg.Permits,
		dust:         cfg.DustThreshold,
		interval:     cfg.Interval,
		capacity:     cfg.MaxEntries,
		sleep:        clock.SleepWithContext,
		now:          time.Now,
		entries:      swiss.NewMap[chainhash.Hash, model.MempoolEntry](1024),
		failures:     lru.New[chainhash.Hash, struct{}](failureMemory),
		distribution: distribution,
	}, nil
}

// Run samples until ctx is canceled and returns the context error.
func (s *Sampler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		started := s.now()
		if _, err := s.Sample(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("sample batch failed, keeping last distribution", zap.Error(err))
		}

		if err := s.sleep(ctx, clock.Pace(s.interval, s.now().Sub(started))); err != nil {
			return err
		}
	}
}

// Sample runs one batch: list ids, prune what left the mempool, fetch new
// work under the permit pool, then recompute and publish the distribution.
// New ids beyond the entry cap wait for room in a later batch.
func (s *Sampler) Sample(ctx context.Context) (res BatchResult, err error) {
	started := s.now()
	defer func() {
		s.metrics.ObserveBatch(err, res.Fetched, res.Failed, res.Pruned, res.Held, started)
	}()

	ids, err := s.source.MempoolTxIDs(ctx)
	if err != nil {
		return res, err
	}

	current := swiss.NewMap[chainhash.Hash, struct{}](uint32(len(ids)))
	for _, id := range ids {
		current.Put(id, struct{}{})
	}
	res.Pruned = s.prune(current)

	work := s.newWork(ids)
	if room := max(s.capacity-s.held(), 0); len(work) > room {
		res.Skipped = len(work) - room
		work = work[:room]
		s.logger.Debug("sampler full, deferring new entries", zap.Int("skipped", res.Skipped), zap.Int("capacity", s.capacity))
	}

	var fetched, failed int64
	fetch := func(ctx context.Context, id chainhash.Hash) error {
		entry, err := s.source.MempoolEntry(ctx, id)
		if err != nil {
			return err
		}
		entry.Dust = entry.BaseFee <= s.dust
		s.mu.Lock()
		s.entries.Put(id, entry)
		s.mu.Unlock()
		atomic.AddInt64(&fetched, 1)
		return nil
	}
	onErr := func(id chainhash.Hash, err error) {
		atomic.AddInt64(&failed, 1)
		s.logFailure(id, err)
	}
	for len(work) > 0 {
		chunk := work[:min(publishEvery, len(work))]
		work = work[len(chunk):]
		if err = workerpool.Process(ctx, s.permits, chunk, fetch, onErr); err != nil {
			break
		}
		if len(work) > 0 {
			s.publish()
		}
	}
	res.Fetched, res.Failed = int(fetched), int(failed)
	if err != nil {
		return res, err
	}

	res.Held = s.publish()
	return res, nil
}

func (s *Sampler) publish() int {
	entries := s.Entries()
	if s.distribution.WriteIfChanged(Compute(entries, s.now())) {
		s.logger.Debug("distribution updated", zap.Int("entries", len(entries)))
	}
	return len(entries)
}

func (s *Sampler) held() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Count()
}

// newWork returns ids not yet held, without duplicates.
func (s *Sampler) newWork(ids []chainhash.Hash) []chainhash.Hash {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := swiss.NewMap[chainhash.Hash, struct{}](uint32(len(ids)))
	work := make([]chainhash.Hash, 0)
	for _, id := range ids {
		if s.entries.Has(id) || seen.Has(id) {
			continue
		}
		seen.Put(id, struct{}{})
		work = append(work, id)
	}
	return work
}

func (s *Sampler) prune(current *swiss.Map[chainhash.Hash, struct{}]) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []chainhash.Hash
	s.entries.Iter(func(id chainhash.Hash, _ model.MempoolEntry) bool {
		if !current.Has(id) {
			stale = append(stale, id)
		}
		return false
	})
	for _, id := range stale {
		s.entries.Delete(id)
	}
	return len(stale)
}

func (s *Sampler) logFailure(id chainhash.Hash, err error) {
	if s.failures.Get(id) != nil {
		return
	}
	s.failures.Set(id, struct{}{})
	s.logger.Debug("mempool entry fetch failed, retrying next batch", zap.Stringer("txid", id), zap.Error(err))
}

// Entries returns a copy of the held entries.
func (s *Sampler) Entries() []model.MempoolEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MempoolEntry, 0, s.entries.Count())
	s.entries.Iter(func(_ chainhash.Hash, e model.MempoolEntry) bool {
		out = append(out, e)
		return false
	})
	return out
}

// View recomputes the distribution over the held entries selected by lens and
// the dust toggle. Stored entries and the published distribution are untouched.
func (s *Sampler) View(lens Lens, includeDust bool) model.MempoolDistribution {
	return Compute(Filter(s.Entries(), lens, includeDust), s.now())
}
