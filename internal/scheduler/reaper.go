package scheduler

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// Reaper runs expiry sweeps on a cron schedule. Overlapping runs are skipped.
type Reaper struct {
	usecase  domain.ReaperUsecase
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

func NewReaper(usecase domain.ReaperUsecase, schedule string, timeout time.Duration) *Reaper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Reaper{
		usecase:  usecase,
		schedule: schedule,
		timeout:  timeout,
	}
}

// Start schedules the sweep. An empty schedule leaves the reaper disabled.
func (r *Reaper) Start() error {
	if r.schedule == "" {
		logger.Log.Info("expiry reaper disabled")
		return nil
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := c.AddFunc(r.schedule, r.run); err != nil {
		return fmt.Errorf("invalid reaper schedule %q: %w", r.schedule, err)
	}
	c.Start()
	r.cron = c
	logger.Log.Info("expiry reaper scheduled", "schedule", r.schedule)
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (r *Reaper) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
		logger.Log.Warn("expiry reaper did not stop in time")
	}
}

func (r *Reaper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if _, err := r.RunOnce(ctx); err != nil {
		logger.Log.Error("expiry sweep failed", "error", apperror.Cause(err))
	}
}

// RunOnce performs a single sweep and records it.
func (r *Reaper) RunOnce(ctx context.Context) (int64, error) {
	n, err := r.usecase.ReapExpired(ctx)
	metrics.ObserveReap(n, err)
	return n, err
}
