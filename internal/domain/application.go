package domain

import (
	"context"
	"errors"
	"time"
)

// Application status constants
const (
	ApplicationStatusApplied      = "applied"
	ApplicationStatusReviewed     = "reviewed"
	ApplicationStatusInterviewing = "interviewing"
	ApplicationStatusOffered      = "offered"
	ApplicationStatusRejected     = "rejected"
	ApplicationStatusHired        = "hired"
)

var (
	// ErrDuplicateApplication is returned when (candidate, job) already has a row.
	ErrDuplicateApplication = errors.New("application already exists")
	// ErrJobNotApplicable is returned when the job is missing, closed or expired.
	ErrJobNotApplicable = errors.New("job is not open for applications")
)

// Application represents a job application from a candidate
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID int64     `json:"candidate_id"`
	CoverLetter *string   `json:"cover_letter,omitempty"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle *string `json:"job_title,omitempty"`
}

// ApplicationRepository is the ledger. Create and Delete keep jobs.application_count in step.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application, now time.Time) error
	Delete(ctx context.Context, candidateID, jobID int64) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByCandidateID(ctx context.Context, candidateID int64) ([]Application, error)
	CheckExists(ctx context.Context, jobID, candidateID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, candidateID, jobID int64, coverLetter string) (*Application, error)
	Withdraw(ctx context.Context, candidateID, jobID int64) error
	GetMyApplications(ctx context.Context, candidateID int64) ([]Application, error)

	// Company operations
	ListByJobID(ctx context.Context, companyID, jobID int64) ([]Application, error)
	UpdateApplicationStatus(ctx context.Context, companyID, applicationID int64, status string) error
}
