package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher periodically forces a catalog reload on a cron schedule.
type Refresher struct {
	loader *Loader
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRefresher validates the schedule (standard 5-field cron or descriptors
// such as "@daily") and registers the reload job. Call Start to run it.
func NewRefresher(loader *Loader, schedule string, logger *slog.Logger) (*Refresher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Refresher{
		loader: loader,
		cron:   cron.New(),
		logger: logger,
	}
	if _, err := r.cron.AddFunc(schedule, func() {
		_, _ = r.Refresh(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start runs the scheduler in its own goroutine.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the scheduler; the returned context is done once a running
// reload has finished.
func (r *Refresher) Stop() context.Context {
	return r.cron.Stop()
}

// Refresh resets the loader and loads the catalog again.
func (r *Refresher) Refresh(ctx context.Context) (int, error) {
	r.loader.Reset()
	lectures, err := r.loader.FetchAll(ctx)
	if err != nil {
		r.logger.Error("catalog refresh failed", "error", err)
		return 0, err
	}
	r.logger.Info("catalog refreshed", "lectures", len(lectures))
	return len(lectures), nil
}
