package usecase

import (
	"context"

	"go-jobboard-backend/pkg/logger"
)

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	db Pinger
}

func NewHealthUsecase(db Pinger) HealthUsecase {
	return &healthUsecase{db: db}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"status": "ok", "database": "ok"}
	if u.db == nil {
		return status, true
	}
	if err := u.db.Ping(ctx); err != nil {
		logger.Log.Error("Health check failed", "error", err)
		status["status"] = "degraded"
		status["database"] = "unreachable"
		return status, false
	}
	return status, true
}
