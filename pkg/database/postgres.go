package database

import (
	"context"
	"time"

	"go-jobboard-backend/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// connectTimeout bounds how long startup keeps retrying an unreachable database.
const connectTimeout = 30 * time.Second

func NewPostgresConnection(ctx context.Context, connString string, maxConns int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	// PgBouncer in transaction mode rejects named prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	if maxConns > 0 {
		config.MaxConns = int32(maxConns)
	}
	config.MinConns = 2
	if config.MinConns > config.MaxConns {
		config.MinConns = config.MaxConns
	}
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = connectTimeout
	b.MaxInterval = 5 * time.Second
	ping := func() error { return pool.Ping(ctx) }
	notify := func(err error, next time.Duration) {
		logger.Log.Warn("Database not reachable yet, retrying", "error", err, "retry_in", next.String())
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Log.Info("Database connection established", "max_conns", config.MaxConns)
	return pool, nil
}
