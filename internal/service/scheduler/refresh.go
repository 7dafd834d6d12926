// Package scheduler runs the background refresh job that keeps the snapshot
// warm and feeds the WebSocket hub.
package scheduler

import (
	"context"
	"time"

	"MacroDash/internal/handler/ws"
	"MacroDash/internal/usecase"
	"MacroDash/pkg/logger"

	"github.com/go-co-op/gocron"
)

// Refresher rebuilds the snapshot on a fixed interval and publishes the
// resulting dashboard to connected clients. A failed refresh is logged and
// skipped; the previous snapshot keeps serving.
type Refresher struct {
	cron     *gocron.Scheduler
	snaps    *usecase.SnapshotProvider
	dash     *usecase.DashboardUseCase
	hub      *ws.Hub
	interval time.Duration
	log      *logger.Logger
}

func NewRefresher(
	snaps *usecase.SnapshotProvider,
	dash *usecase.DashboardUseCase,
	hub *ws.Hub,
	interval time.Duration,
	log *logger.Logger,
) *Refresher {
	return &Refresher{
		cron:     gocron.NewScheduler(time.UTC),
		snaps:    snaps,
		dash:     dash,
		hub:      hub,
		interval: interval,
		log:      log,
	}
}

// Start warms the snapshot once, then schedules the periodic refresh. The
// warm-up failure is not fatal: the first request triggers its own build.
func (r *Refresher) Start(ctx context.Context) error {
	r.refresh(ctx)

	if _, err := r.cron.Every(r.interval).Do(func() { r.refresh(ctx) }); err != nil {
		return err
	}
	r.cron.StartAsync()
	r.log.Info("refresh scheduler started", logger.Duration("interval", r.interval))
	return nil
}

// Stop halts the job loop. A refresh in flight finishes on its own.
func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refresh(ctx context.Context) {
	start := time.Now()
	if _, err := r.snaps.Refresh(ctx); err != nil {
		r.log.Warn("scheduled refresh failed", logger.Error(err))
		return
	}
	r.log.Info("snapshot refreshed", logger.Duration("took", time.Since(start)))

	if r.hub == nil {
		return
	}
	d, err := r.dash.Get(ctx)
	if err != nil {
		r.log.Warn("dashboard build after refresh failed", logger.Error(err))
		return
	}
	r.hub.Publish(d)
}
