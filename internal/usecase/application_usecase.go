package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

const maxCoverLetterLength = 5000

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		now:             time.Now,
	}
}

// Apply records an application if the job is open. Openness and uniqueness are decided by the
// insert itself, so concurrent requests cannot both succeed.
func (uc *applicationUsecase) Apply(ctx context.Context, candidateID, jobID int64, coverLetter string) (*domain.Application, error) {
	if candidateID <= 0 {
		return nil, apperror.Unauthorized("Job seeker identity required")
	}
	if jobID <= 0 {
		return nil, apperror.BadRequest("Invalid job id")
	}

	coverLetter = strings.TrimSpace(coverLetter)
	if utf8.RuneCountInString(coverLetter) > maxCoverLetterLength {
		return nil, apperror.BadRequest("Cover letter must be at most 5000 characters")
	}
	var coverLetterPtr *string
	if coverLetter != "" {
		coverLetterPtr = &coverLetter
	}

	app := &domain.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		CoverLetter: coverLetterPtr,
		Status:      domain.ApplicationStatusApplied,
	}
	if err := uc.applicationRepo.Create(ctx, app, uc.now()); err != nil {
		return nil, mapRepoError(err, "Candidate profile not found")
	}
	return app, nil
}

// Withdraw removes the candidate's application; they may apply again afterwards.
func (uc *applicationUsecase) Withdraw(ctx context.Context, candidateID, jobID int64) error {
	if candidateID <= 0 {
		return apperror.Unauthorized("Job seeker identity required")
	}
	return mapRepoError(uc.applicationRepo.Delete(ctx, candidateID, jobID), "Application not found")
}

// GetMyApplications returns all applications for the current candidate
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListByJobID returns all applications for a job (employer only, validated by ownership)
func (uc *applicationUsecase) ListByJobID(ctx context.Context, companyID, jobID int64) ([]domain.Application, error) {
	if err := uc.validateJobOwnership(ctx, companyID, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateApplicationStatus allows employer to move an application through the hiring pipeline
func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, companyID, applicationID int64, status string) error {
	validStatuses := map[string]bool{
		domain.ApplicationStatusApplied:      true,
		domain.ApplicationStatusReviewed:     true,
		domain.ApplicationStatusInterviewing: true,
		domain.ApplicationStatusOffered:      true,
		domain.ApplicationStatusRejected:     true,
		domain.ApplicationStatusHired:        true,
	}
	if !validStatuses[status] {
		return apperror.BadRequest("Invalid status. Must be: applied, reviewed, interviewing, offered, rejected, or hired")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return mapRepoError(err, "Application not found")
	}
	if err := uc.validateJobOwnership(ctx, companyID, app.JobID); err != nil {
		return err
	}
	return mapRepoError(uc.applicationRepo.UpdateStatus(ctx, applicationID, status), "Application not found")
}

// validateJobOwnership checks if the company owns the job
func (uc *applicationUsecase) validateJobOwnership(ctx context.Context, companyID, jobID int64) error {
	if companyID <= 0 {
		return apperror.Forbidden("Only companies can review applications")
	}
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return mapRepoError(err, "Job not found")
	}
	if job.CompanyID != companyID {
		return apperror.Forbidden("You can only view applications for your own jobs")
	}
	return nil
}
