package worker

import (
	"context"
	"time"

	"github.com/gitpulse-io/gitpulse/internal/service"
	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/gitpulse-io/gitpulse/pkg/logger"
)

// RefreshWorker periodically re-fetches the selected repository so the
// dashboard stays current without user interaction. A tick that lands while
// a user-triggered fetch is in flight is skipped, not queued.
type RefreshWorker struct {
	service  *service.DashboardService
	interval time.Duration
}

func NewRefreshWorker(service *service.DashboardService, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		service:  service,
		interval: interval,
	}
}

func (w *RefreshWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.service.RefreshSelectedRepository(ctx); err != nil {
				if errors.IsRef(err, errors.RefOpInFlight) {
					logger.Debug("skipping refresh: another fetch is in flight")
					continue
				}
				logger.Error("background refresh failed: %v", err)
				continue
			}
			if repo := w.service.SelectedRepo(); repo != "" {
				logger.Info("refreshed repository %s", repo)
			}

		case <-ctx.Done():
			logger.Info("stopping refresh worker")
			return
		}
	}
}
