package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReapExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report how many jobs were deactivated", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewReaperUsecase(jobRepo)
		jobRepo.On("DeactivateExpired", ctx, anyTime).Return(int64(3), nil).Once()
		jobRepo.On("DeactivateExpired", ctx, anyTime).Return(int64(0), nil).Once()

		n, err := uc.ReapExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		n, err = uc.ReapExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("Should wrap storage errors", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewReaperUsecase(jobRepo)
		jobRepo.On("DeactivateExpired", ctx, anyTime).Return(int64(0), errors.New("conn closed"))

		_, err := uc.ReapExpired(ctx)
		assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
	})
}

func TestRecountApplications(t *testing.T) {
	ctx := context.Background()
	jobRepo := new(MockJobRepo)
	uc := usecase.NewReaperUsecase(jobRepo)
	jobRepo.On("RecountApplications", ctx).Return(int64(2), nil)

	n, err := uc.RecountApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
