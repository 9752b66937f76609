package usecase

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

const (
	defaultCompanyPageSize = 20
	maxCompanyPageSize     = 100
	maxReactivationDays    = 365
)

type jobUsecase struct {
	jobRepo         domain.JobRepository
	skillRepo       domain.SkillRepository
	applicationRepo domain.ApplicationRepository
	categoryRepo    domain.CategoryRepository
	validate        *validator.Validate
	lifetimeDays    int
	now             func() time.Time
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	skillRepo domain.SkillRepository,
	applicationRepo domain.ApplicationRepository,
	categoryRepo domain.CategoryRepository,
	validate *validator.Validate,
	lifetimeDays int,
) domain.JobUsecase {
	if lifetimeDays <= 0 {
		lifetimeDays = 30
	}
	return &jobUsecase{
		jobRepo:         jobRepo,
		skillRepo:       skillRepo,
		applicationRepo: applicationRepo,
		categoryRepo:    categoryRepo,
		validate:        validate,
		lifetimeDays:    lifetimeDays,
		now:             time.Now,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, companyID int64, job *domain.Job, skills []domain.SkillAssignment) error {
	if companyID <= 0 {
		return apperror.Forbidden("Only companies can post jobs")
	}
	normalized, err := u.validateJob(job, skills)
	if err != nil {
		return err
	}

	now := u.now()
	expiresAt := now.AddDate(0, 0, u.lifetimeDays)
	job.CompanyID = companyID
	job.IsActive = true
	job.PostedAt = now
	job.UpdatedAt = now
	job.ExpiresAt = &expiresAt
	job.ApplicationCount = 0

	if err := u.jobRepo.Create(ctx, job, normalized); err != nil {
		return mapRepoError(err, "Company or category not found")
	}
	return nil
}

// GetJobDetails hides closed and expired jobs from everyone but the owning company.
func (u *jobUsecase) GetJobDetails(ctx context.Context, id int64, viewer *domain.Identity) (*domain.JobDetail, error) {
	job, err := u.jobRepo.GetByIDWithCompany(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Job not found")
	}
	if !job.IsOpen(u.now()) && !viewer.OwnsCompany(job.CompanyID) {
		return nil, apperror.NotFound("Job not found")
	}

	skills, err := u.skillRepo.GetEntitySkills(ctx, domain.EntityJob, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	detail := &domain.JobDetail{JobWithCompany: *job, Skills: skills}
	if candidateID, ok := viewer.CandidateID(); ok {
		applied, err := u.applicationRepo.CheckExists(ctx, id, candidateID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		detail.HasApplied = applied
	}
	return detail, nil
}

func (u *jobUsecase) ListJobsByCompany(ctx context.Context, companyID int64, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if page > domain.MaxListingPage {
		return nil, 0, apperror.BadRequest(fmt.Sprintf("Page: must be at most %d", domain.MaxListingPage))
	}
	if pageSize < 1 {
		pageSize = defaultCompanyPageSize
	}
	if pageSize > maxCompanyPageSize {
		pageSize = maxCompanyPageSize
	}
	offset := (page - 1) * pageSize

	jobs, total, err := u.jobRepo.FetchByCompanyID(ctx, companyID, pageSize, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

// UpdateJob saves the editable fields. Skills are replaced only when non-nil.
func (u *jobUsecase) UpdateJob(ctx context.Context, companyID int64, job *domain.Job, skills []domain.SkillAssignment) error {
	existing, err := u.ownedJob(ctx, companyID, job.ID)
	if err != nil {
		return err
	}
	normalized, err := u.validateJob(job, skills)
	if err != nil {
		return err
	}
	if skills == nil {
		normalized = nil
	}

	job.CompanyID = existing.CompanyID
	job.IsActive = existing.IsActive
	job.PostedAt = existing.PostedAt
	job.ExpiresAt = existing.ExpiresAt
	job.ApplicationCount = existing.ApplicationCount
	job.UpdatedAt = u.now()

	if err := u.jobRepo.Update(ctx, job, normalized); err != nil {
		return mapRepoError(err, "Job or category not found")
	}
	return nil
}

func (u *jobUsecase) UpdateJobSkills(ctx context.Context, companyID, jobID int64, skills []domain.SkillAssignment) ([]domain.EntitySkill, error) {
	if _, err := u.ownedJob(ctx, companyID, jobID); err != nil {
		return nil, err
	}
	normalized, err := normalizeSkills(u.validate, skills)
	if err != nil {
		return nil, err
	}
	if err := u.skillRepo.ReplaceEntitySkills(ctx, domain.EntityJob, jobID, normalized); err != nil {
		return nil, mapRepoError(err, "Job not found")
	}
	saved, err := u.skillRepo.GetEntitySkills(ctx, domain.EntityJob, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return saved, nil
}

func (u *jobUsecase) CloseJob(ctx context.Context, companyID, jobID int64) error {
	if _, err := u.ownedJob(ctx, companyID, jobID); err != nil {
		return err
	}
	return mapRepoError(u.jobRepo.Close(ctx, jobID), "Job not found")
}

// ReactivateJob reopens a job for days more days; zero means the default lifetime.
func (u *jobUsecase) ReactivateJob(ctx context.Context, companyID, jobID int64, days int) (*domain.Job, error) {
	if days == 0 {
		days = u.lifetimeDays
	}
	if days < 1 || days > maxReactivationDays {
		return nil, apperror.BadRequest("Days must be between 1 and 365")
	}
	if _, err := u.ownedJob(ctx, companyID, jobID); err != nil {
		return nil, err
	}

	if err := u.jobRepo.Reactivate(ctx, jobID, u.now().AddDate(0, 0, days)); err != nil {
		return nil, mapRepoError(err, "Job not found")
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (u *jobUsecase) ownedJob(ctx context.Context, companyID, jobID int64) (*domain.Job, error) {
	if companyID <= 0 {
		return nil, apperror.Forbidden("Only companies can manage jobs")
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "Job not found")
	}
	if job.CompanyID != companyID {
		return nil, apperror.Forbidden("You can only manage your own jobs")
	}
	return job, nil
}

func (u *jobUsecase) validateJob(job *domain.Job, skills []domain.SkillAssignment) ([]domain.SkillAssignment, error) {
	if job.SalaryCurrency == "" {
		job.SalaryCurrency = "USD"
	}
	if err := u.validate.Struct(job); err != nil {
		return nil, validationError(err)
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperror.BadRequest("Minimum salary cannot be greater than maximum salary")
	}
	return normalizeSkills(u.validate, skills)
}
