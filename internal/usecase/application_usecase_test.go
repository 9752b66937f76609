package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should record a new application with trimmed cover letter", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo))
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application"), anyTime).Return(nil).Run(func(args mock.Arguments) {
			app := args.Get(1).(*domain.Application)
			assert.Equal(t, int64(9), app.JobID)
			assert.Equal(t, int64(7), app.CandidateID)
			assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
			require.NotNil(t, app.CoverLetter)
			assert.Equal(t, "Hello", *app.CoverLetter)
			app.ID = 100
		})

		app, err := uc.Apply(ctx, 7, 9, "  Hello ")
		require.NoError(t, err)
		assert.Equal(t, int64(100), app.ID)
	})

	cases := []struct {
		name     string
		repoErr  error
		wantKind apperror.Kind
		wantCode int
	}{
		{"Should map a duplicate to DuplicateApplication", domain.ErrDuplicateApplication, apperror.KindDuplicateApplication, http.StatusConflict},
		{"Should map a closed job to NotApplicable", domain.ErrJobNotApplicable, apperror.KindNotApplicable, http.StatusUnprocessableEntity},
		{"Should map an unknown candidate to NotFound", domain.ErrNotFound, apperror.KindNotFound, http.StatusNotFound},
		{"Should hide driver errors behind a storage error", errors.New("deadlock detected"), apperror.KindStorage, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appRepo := new(MockApplicationRepo)
			uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo))
			appRepo.On("Create", ctx, mock.Anything, anyTime).Return(tc.repoErr)

			app, err := uc.Apply(ctx, 7, 9, "")
			assert.Nil(t, app)
			assert.Equal(t, tc.wantKind, apperror.KindOf(err))

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.wantCode, appErr.Code)
		})
	}

	t.Run("Should never consult the ledger before inserting", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo))
		appRepo.On("Create", ctx, mock.Anything, anyTime).Return(nil)

		_, err := uc.Apply(ctx, 7, 9, "")
		require.NoError(t, err)
		appRepo.AssertNotCalled(t, "CheckExists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject oversized cover letters without touching storage", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo))

		_, err := uc.Apply(ctx, 7, 9, strings.Repeat("x", 5001))
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should require a candidate", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		_, err := uc.Apply(ctx, 0, 9, "")
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	appRepo := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo))

	appRepo.On("Delete", ctx, int64(7), int64(9)).Return(nil).Once()
	assert.NoError(t, uc.Withdraw(ctx, 7, 9))

	appRepo.On("Delete", ctx, int64(7), int64(9)).Return(domain.ErrNotFound).Once()
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(uc.Withdraw(ctx, 7, 9)))
}

func TestCompanyApplicationAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("Should list applications for the owning company", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)
		jobRepo.On("GetByID", ctx, int64(9)).Return(&domain.Job{ID: 9, CompanyID: 3}, nil)
		appRepo.On("GetByJobID", ctx, int64(9)).Return([]domain.Application{{ID: 1}}, nil)

		apps, err := uc.ListByJobID(ctx, 3, 9)
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("Should forbid another company", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)
		jobRepo.On("GetByID", ctx, int64(9)).Return(&domain.Job{ID: 9, CompanyID: 3}, nil)

		_, err := uc.ListByJobID(ctx, 4, 9)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		appRepo.AssertNotCalled(t, "GetByJobID", mock.Anything, mock.Anything)
	})

	t.Run("Should update status after the ownership check", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)
		appRepo.On("GetByID", ctx, int64(50)).Return(&domain.Application{ID: 50, JobID: 9}, nil)
		jobRepo.On("GetByID", ctx, int64(9)).Return(&domain.Job{ID: 9, CompanyID: 3}, nil)
		appRepo.On("UpdateStatus", ctx, int64(50), domain.ApplicationStatusInterviewing).Return(nil)

		require.NoError(t, uc.UpdateApplicationStatus(ctx, 3, 50, domain.ApplicationStatusInterviewing))
		appRepo.AssertExpectations(t)
	})

	t.Run("Should reject an unknown status", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		err := uc.UpdateApplicationStatus(ctx, 3, 50, "accepted")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}
