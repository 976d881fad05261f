// Package poller maintains a continuously refreshed snapshot of
// market data. Each cycle fetches the watched symbols in one batched
// request, normalizes the result, and broadcasts it as a full
// replacement of the previous snapshot.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/ghaggin/cryptodash/internal/model"
	"go.uber.org/zap"
)

// MarketClient is the slice of the market backend the poller needs.
type MarketClient interface {
	GetMarketData(ctx context.Context, symbols []string) ([]model.PriceRecord, error)
}

// MarketClientFunc is a function adapter for MarketClient.
type MarketClientFunc func(ctx context.Context, symbols []string) ([]model.PriceRecord, error)

func (f MarketClientFunc) GetMarketData(ctx context.Context, symbols []string) ([]model.PriceRecord, error) {
	return f(ctx, symbols)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // refresh interval (default: 30s)
}

// DefaultConfig returns a rate-limit friendly default.
func DefaultConfig() Config {
	return Config{
		Interval: 30 * time.Second,
	}
}

// Poller owns a symbol set, a refresh schedule, and a subscriber
// registry. Cycles run sequentially on the schedule goroutine: a slow
// fetch delays the next tick rather than stacking requests against a
// rate-limited upstream.
type Poller struct {
	cfg    Config
	client MarketClient
	log    *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	snapshot []model.PriceRecord
	subs     map[int]func([]model.PriceRecord)
	nextSub  int
}

// New creates a Poller.
func New(cfg Config, client MarketClient, log *zap.Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		cfg:    cfg,
		client: client,
		log:    log,
		subs:   map[int]func([]model.PriceRecord){},
	}
}

// Start begins polling the given symbols: one immediate cycle, then a
// recurring cycle every interval. A second Start supersedes the prior
// schedule; the old goroutine is cancelled and drained first so two
// schedules never overlap.
func (p *Poller) Start(symbols []string) {
	p.stopSchedule()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	watched := make([]string, len(symbols))
	copy(watched, symbols)

	go p.run(ctx, done, watched)

	p.log.Info("price poller started",
		zap.Strings("symbols", watched),
		zap.Duration("interval", p.cfg.Interval),
	)
}

// Stop cancels the recurring schedule and releases its ticker. It is
// idempotent and a no-op when the poller is not running.
func (p *Poller) Stop() {
	if p.stopSchedule() {
		p.log.Info("price poller stopped")
	}
}

// Running reports whether a schedule is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Snapshot returns a copy of the last broadcast snapshot.
func (p *Poller) Snapshot() []model.PriceRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]model.PriceRecord, len(p.snapshot))
	copy(out, p.snapshot)
	return out
}

// Subscribe registers fn for snapshot broadcasts. The latest snapshot
// is replayed immediately; the returned cancel removes the
// registration.
func (p *Poller) Subscribe(fn func([]model.PriceRecord)) (cancel func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	fn(p.Snapshot())

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// stopSchedule cancels any active schedule and waits for its
// goroutine to finish. The lock is released before waiting because
// the goroutine takes it to commit snapshots.
func (p *Poller) stopSchedule() bool {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return false
	}

	cancel()
	<-done
	return true
}

func (p *Poller) run(ctx context.Context, done chan struct{}, symbols []string) {
	defer close(done)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.cycle(ctx, symbols)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx, symbols)
		}
	}
}

// cycle performs one fetch-normalize-broadcast iteration. A failed
// fetch never stops the schedule: the last-good snapshot is
// re-broadcast unchanged so a live dashboard is not blanked by one
// upstream hiccup.
func (p *Poller) cycle(ctx context.Context, symbols []string) {
	start := time.Now()

	records, err := p.client.GetMarketData(ctx, symbols)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn("poll cycle failed, retaining last snapshot", zap.Error(err))
		p.broadcast(p.Snapshot())
		return
	}

	p.mu.Lock()
	p.snapshot = records
	p.mu.Unlock()

	p.log.Debug("poll cycle complete",
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)),
	)

	p.broadcast(records)
}

// broadcast invokes subscribers outside the registry lock.
func (p *Poller) broadcast(records []model.PriceRecord) {
	p.mu.Lock()
	fns := make([]func([]model.PriceRecord), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(records)
	}
}
