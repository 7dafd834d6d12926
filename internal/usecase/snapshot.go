package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	drepo "MacroDash/internal/domain/repository"
	"MacroDash/internal/timeseries"
	"MacroDash/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// Snapshot is one immutable build of the observation table. It is replaced
// wholesale on refresh, never mutated in place.
type Snapshot struct {
	Frame     *timeseries.Frame
	FetchedAt time.Time
}

// SnapshotProvider memoizes the fetched-and-transformed table with a TTL.
// Concurrent callers inside a validity window observe the same snapshot;
// a single-flight group guarantees at most one concurrent rebuild.
type SnapshotProvider struct {
	data  *MarketData
	ttl   time.Duration
	grace time.Duration

	mu  sync.RWMutex
	cur *Snapshot

	group   singleflight.Group
	log     *logger.Logger
	metrics drepo.Metrics
}

// NewSnapshotProvider creates the snapshot cache. grace is how long an
// expired snapshot may still be served when a rebuild fails.
func NewSnapshotProvider(data *MarketData, ttl, grace time.Duration, log *logger.Logger, metrics drepo.Metrics) *SnapshotProvider {
	return &SnapshotProvider{
		data:    data,
		ttl:     ttl,
		grace:   grace,
		log:     log,
		metrics: metrics,
	}
}

// Get returns the current snapshot, rebuilding it when expired. The bool
// reports whether a stale (expired but within grace) snapshot was served
// because the rebuild failed.
func (p *SnapshotProvider) Get(ctx context.Context) (*Snapshot, bool, error) {
	if snap := p.fresh(); snap != nil {
		p.metrics.RecordCacheLookup("hit")
		return snap, false, nil
	}
	p.metrics.RecordCacheLookup("miss")

	v, err, _ := p.group.Do("snapshot", func() (interface{}, error) {
		// A concurrent caller may have completed the rebuild while this
		// one waited on the group.
		if snap := p.fresh(); snap != nil {
			return snap, nil
		}
		return p.rebuild(ctx)
	})
	if err != nil {
		if snap := p.withinGrace(); snap != nil {
			p.metrics.RecordCacheLookup("stale")
			p.log.Warn("serving stale snapshot after failed refresh", logger.Error(err))
			return snap, true, nil
		}
		return nil, false, err
	}
	return v.(*Snapshot), false, nil
}

// Refresh forces a rebuild regardless of TTL. Used by the hourly scheduler
// so the cache is warm before a request arrives.
func (p *SnapshotProvider) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, _ := p.group.Do("refresh", func() (interface{}, error) {
		return p.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Current returns the held snapshot without triggering a rebuild.
func (p *SnapshotProvider) Current() (*Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cur, p.cur != nil
}

// TTL returns the configured validity window.
func (p *SnapshotProvider) TTL() time.Duration { return p.ttl }

func (p *SnapshotProvider) fresh() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cur != nil && time.Since(p.cur.FetchedAt) <= p.ttl {
		return p.cur
	}
	return nil
}

func (p *SnapshotProvider) withinGrace() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cur != nil && time.Since(p.cur.FetchedAt) <= p.ttl+p.grace {
		return p.cur
	}
	return nil
}

func (p *SnapshotProvider) rebuild(ctx context.Context) (*Snapshot, error) {
	begin := time.Now()

	macro, market, err := p.data.FetchPanels(ctx)
	if err != nil {
		p.metrics.RecordRefresh("error")
		return nil, err
	}

	frame, err := BuildTable(macro, market)
	if err != nil {
		p.metrics.RecordRefresh("error")
		return nil, fmt.Errorf("build table: %w", err)
	}

	snap := &Snapshot{Frame: frame, FetchedAt: time.Now()}
	p.mu.Lock()
	p.cur = snap
	p.mu.Unlock()

	p.metrics.RecordRefresh("ok")
	p.metrics.RecordSnapshot(0, frame.Len())
	p.log.Info("snapshot rebuilt",
		logger.Int("rows", frame.Len()),
		logger.Duration("took", time.Since(begin)),
	)
	return snap, nil
}
