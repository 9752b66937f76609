package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job types accepted by jobs.job_type.
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeFreelance  = "freelance"
	JobTypeTemporary  = "temporary"
)

type Job struct {
	ID               int64      `json:"id"`
	CompanyID        int64      `json:"company_id"`
	CategoryID       *int64     `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Title            string     `json:"title" validate:"required,max=255,no_emoji"`
	Description      string     `json:"description" validate:"required"`
	Location         string     `json:"location" validate:"required,max=255"`
	JobType          string     `json:"job_type" validate:"required,oneof=full_time part_time contract internship freelance temporary"`
	ExperienceLevel  string     `json:"experience_level" validate:"omitempty,oneof=entry mid senior lead executive"`
	SalaryMin        *int64     `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax        *int64     `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	SalaryCurrency   string     `json:"salary_currency" validate:"omitempty,len=3"`
	Remote           bool       `json:"remote"`
	IsActive         bool       `json:"is_active"`
	PostedAt         time.Time  `json:"posted_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ApplicationCount int64      `json:"application_count"`
}

// IsOpen reports whether candidates may see and apply to the job at now.
// Expiry is checked directly so a posting closes before the reaper flips is_active.
func (j *Job) IsOpen(now time.Time) bool {
	return j.IsActive && (j.ExpiresAt == nil || j.ExpiresAt.After(now))
}

// JobWithCompany extends Job with company and category information
type JobWithCompany struct {
	Job
	CompanyName    string  `json:"company_name"`
	CompanyLogoURL *string `json:"company_logo_url"`
	CategoryName   *string `json:"category_name,omitempty"`
}

// JobDetail is the single-job view served to candidates and companies.
type JobDetail struct {
	JobWithCompany
	Skills     []EntitySkill `json:"skills"`
	HasApplied bool          `json:"has_applied"`
}

// JobSummary is one row of a job listing.
type JobSummary struct {
	ID                 int64      `json:"id"`
	CompanyID          int64      `json:"company_id"`
	CategoryID         *int64     `json:"category_id,omitempty"`
	Title              string     `json:"title"`
	Location           string     `json:"location"`
	JobType            string     `json:"job_type"`
	SalaryMin          *int64     `json:"salary_min,omitempty"`
	SalaryMax          *int64     `json:"salary_max,omitempty"`
	SalaryCurrency     string     `json:"salary_currency"`
	Remote             bool       `json:"remote"`
	CompanyName        string     `json:"company_name"`
	CompanyLogoURL     *string    `json:"company_logo_url"`
	PostedAt           time.Time  `json:"posted_at"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	ApplicationCount   int64      `json:"application_count"`
	HasApplied         bool       `json:"has_applied"`
	MatchPercentage    *float64   `json:"match_percentage,omitempty"`
	MatchingSkillCount *int       `json:"matching_skill_count,omitempty"`
	TotalSkillCount    *int       `json:"total_skill_count,omitempty"`
}

// WithMatch annotates the summary with a match result.
func (s JobSummary) WithMatch(m MatchResult) JobSummary {
	pct, matching, total := m.MatchPercentage, m.MatchingSkillCount, m.TotalSkillCount
	s.MatchPercentage = &pct
	s.MatchingSkillCount = &matching
	s.TotalSkillCount = &total
	return s
}

// SortMode selects the listing order.
type SortMode string

const (
	SortRecent SortMode = "recent"
	SortMatch  SortMode = "match"
)

// JobFilter narrows a listing. Zero values mean "no filter".
type JobFilter struct {
	CategoryID *int64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Search     string `json:"search,omitempty" validate:"max=200"`
	JobType    string `json:"job_type,omitempty" validate:"omitempty,oneof=full_time part_time contract internship freelance temporary"`
	Remote     *bool  `json:"remote,omitempty"`
}

// MaxListingPage is the highest page number listing queries accept.
const MaxListingPage = 10000

type ListingQuery struct {
	JobFilter
	Sort     SortMode `json:"sort" validate:"omitempty,oneof=recent match"`
	Page     int      `json:"page" validate:"lte=10000"`
	PageSize int      `json:"page_size"`
}

type JobPage struct {
	Jobs     []JobSummary `json:"jobs"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Sort     SortMode     `json:"sort"`
}

// ScoringRow is the slim projection of an open job used for match ranking.
type ScoringRow struct {
	JobID            int64
	PostedAt         time.Time
	RequiredSkillIDs []int64
}

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type JobRepository interface {
	// Create inserts the job and its skill set in one transaction.
	Create(ctx context.Context, job *Job, skills []SkillAssignment) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	GetByIDWithCompany(ctx context.Context, id int64) (*JobWithCompany, error)
	FetchByCompanyID(ctx context.Context, companyID int64, limit, offset int) ([]Job, int64, error)
	// Update saves the editable fields; a non-nil skills slice replaces the skill set in the same transaction.
	Update(ctx context.Context, job *Job, skills []SkillAssignment) error
	Close(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64, expiresAt time.Time) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	RecountApplications(ctx context.Context) (int64, error)
}

type ListingRepository interface {
	ListRecent(ctx context.Context, filter JobFilter, viewerID int64, now time.Time, limit, offset int) ([]JobSummary, int64, error)
	ListScoringRows(ctx context.Context, filter JobFilter, now time.Time) ([]ScoringRow, error)
	GetSummaries(ctx context.Context, ids []int64, viewerID int64) ([]JobSummary, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, companyID int64, job *Job, skills []SkillAssignment) error
	GetJobDetails(ctx context.Context, id int64, viewer *Identity) (*JobDetail, error)
	ListJobsByCompany(ctx context.Context, companyID int64, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, companyID int64, job *Job, skills []SkillAssignment) error
	UpdateJobSkills(ctx context.Context, companyID, jobID int64, skills []SkillAssignment) ([]EntitySkill, error)
	CloseJob(ctx context.Context, companyID, jobID int64) error
	ReactivateJob(ctx context.Context, companyID, jobID int64, days int) (*Job, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

type ListingUsecase interface {
	ListJobs(ctx context.Context, query ListingQuery, viewer *Identity) (*JobPage, error)
	GetMatchedJobs(ctx context.Context, candidateID int64) ([]JobSummary, error)
}

type ReaperUsecase interface {
	ReapExpired(ctx context.Context) (int64, error)
	RecountApplications(ctx context.Context) (int64, error)
}
