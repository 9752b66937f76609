package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

type reaperUsecase struct {
	jobRepo domain.JobRepository
	now     func() time.Time
}

func NewReaperUsecase(jobRepo domain.JobRepository) domain.ReaperUsecase {
	return &reaperUsecase{jobRepo: jobRepo, now: time.Now}
}

// ReapExpired deactivates every active job whose expiry has passed.
func (u *reaperUsecase) ReapExpired(ctx context.Context) (int64, error) {
	n, err := u.jobRepo.DeactivateExpired(ctx, u.now())
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if n > 0 {
		logger.Log.Info("Deactivated expired jobs", "count", n)
	}
	return n, nil
}

// RecountApplications repairs application counters that drifted from the ledger.
func (u *reaperUsecase) RecountApplications(ctx context.Context) (int64, error) {
	n, err := u.jobRepo.RecountApplications(ctx)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if n > 0 {
		logger.Log.Warn("Repaired drifted application counters", "jobs", n)
	}
	return n, nil
}
