package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReaperUsecase struct {
	calls atomic.Int32
	n     int64
	err   error
}

func (f *fakeReaperUsecase) ReapExpired(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return f.n, f.err
}

func (f *fakeReaperUsecase) RecountApplications(ctx context.Context) (int64, error) {
	return 0, nil
}

func TestReaperStart(t *testing.T) {
	t.Run("Should stay idle without a schedule", func(t *testing.T) {
		r := NewReaper(&fakeReaperUsecase{}, "", time.Second)
		require.NoError(t, r.Start())
		assert.Nil(t, r.cron)
		r.Stop(context.Background())
	})

	t.Run("Should reject a malformed schedule", func(t *testing.T) {
		r := NewReaper(&fakeReaperUsecase{}, "every now and then", time.Second)
		assert.Error(t, r.Start())
	})

	t.Run("Should start and stop a valid schedule", func(t *testing.T) {
		r := NewReaper(&fakeReaperUsecase{}, "@every 1h", time.Second)
		require.NoError(t, r.Start())
		assert.NotNil(t, r.cron)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		r.Stop(ctx)
	})
}

func TestReaperRunOnce(t *testing.T) {
	uc := &fakeReaperUsecase{n: 2}
	r := NewReaper(uc, "", 0)

	n, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	uc.err = errors.New("db down")
	_, err = r.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), uc.calls.Load())
}

func TestReaperRunLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Log
	logger.Log = slog.New(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { logger.Log = prev })

	t.Run("Should log the underlying cause of a failed sweep", func(t *testing.T) {
		buf.Reset()
		r := NewReaper(&fakeReaperUsecase{err: apperror.Internal(errors.New("connection refused"))}, "", time.Second)
		r.run()

		assert.Contains(t, buf.String(), "expiry sweep failed")
		assert.Contains(t, buf.String(), "connection refused")
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("Should stay quiet after a clean sweep", func(t *testing.T) {
		buf.Reset()
		r := NewReaper(&fakeReaperUsecase{}, "", time.Second)
		r.run()

		assert.NotContains(t, buf.String(), "expiry sweep failed")
	})
}
