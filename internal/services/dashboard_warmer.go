package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DashboardWarmer periodically recomputes the dashboard snapshot and
// refreshes the cache, so admin page loads rarely pay the full fan-out
// latency.
type DashboardWarmer struct {
	cron    *cron.Cron
	service *DashboardService
	cache   *DashboardCacheService
	logger  *zap.Logger
}

// NewDashboardWarmer creates a warmer running on the given cron spec
// (e.g. "@every 1m").
func NewDashboardWarmer(spec string, service *DashboardService, cache *DashboardCacheService, logger *zap.Logger) (*DashboardWarmer, error) {
	w := &DashboardWarmer{
		cron:    cron.New(),
		service: service,
		cache:   cache,
		logger:  logger,
	}

	if _, err := w.cron.AddFunc(spec, w.warm); err != nil {
		return nil, err
	}
	return w, nil
}

// Start begins the warming schedule.
func (w *DashboardWarmer) Start() {
	w.cron.Start()
	w.logger.Info("Dashboard cache warmer started")
}

// Stop halts the warming schedule, waiting for a running job to finish.
func (w *DashboardWarmer) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("Dashboard cache warmer stopped")
}

func (w *DashboardWarmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, err := w.service.GetDashboardStats(ctx, time.Now())
	if err != nil {
		w.logger.Warn("dashboard warm-up computation failed", zap.Error(err))
		return
	}

	if err := w.cache.Set(ctx, snapshot); err != nil {
		w.logger.Warn("dashboard warm-up cache write failed", zap.Error(err))
	}
}
