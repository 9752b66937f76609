package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, company_id, category_id, title, description, location, job_type, COALESCE(experience_level, ''),
	salary_min, salary_max, salary_currency, remote, is_active, posted_at, expires_at, updated_at, application_count`

func scanJob(row pgx.Row, extra ...any) (*domain.Job, error) {
	var job domain.Job
	dest := []any{
		&job.ID, &job.CompanyID, &job.CategoryID, &job.Title, &job.Description, &job.Location, &job.JobType, &job.ExperienceLevel,
		&job.SalaryMin, &job.SalaryMax, &job.SalaryCurrency, &job.Remote, &job.IsActive, &job.PostedAt, &job.ExpiresAt, &job.UpdatedAt,
		&job.ApplicationCount,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create inserts the posting and its skill set in one transaction.
func (r *jobRepo) Create(ctx context.Context, job *domain.Job, skills []domain.SkillAssignment) error {
	resolved, err := resolveSkillSet(ctx, r.db, skills)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO jobs (company_id, category_id, title, description, location, job_type, experience_level,
			salary_min, salary_max, salary_currency, remote, is_active, posted_at, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err = tx.QueryRow(ctx, query,
		job.CompanyID, job.CategoryID, job.Title, job.Description, job.Location, job.JobType, nullIfEmpty(job.ExperienceLevel),
		job.SalaryMin, job.SalaryMax, job.SalaryCurrency, job.Remote, job.IsActive, job.PostedAt, job.ExpiresAt, job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to insert job: %w", err)
	}

	if err := replaceSkillSet(ctx, tx, domain.EntityJob, job.ID, resolved); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

// GetByIDWithCompany retrieves a job with company and category details
func (r *jobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	query := `
		SELECT
			j.id, j.company_id, j.category_id, j.title, j.description, j.location, j.job_type, COALESCE(j.experience_level, ''),
			j.salary_min, j.salary_max, j.salary_currency, j.remote, j.is_active, j.posted_at, j.expires_at, j.updated_at,
			j.application_count,
			COALESCE(c.name, 'Unknown Company') as company_name,
			c.logo_url,
			cat.name
		FROM jobs j
		LEFT JOIN companies c ON j.company_id = c.id
		LEFT JOIN categories cat ON j.category_id = cat.id
		WHERE j.id = $1`

	var out domain.JobWithCompany
	job, err := scanJob(r.db.QueryRow(ctx, query, id), &out.CompanyName, &out.CompanyLogoURL, &out.CategoryName)
	if err != nil {
		return nil, err
	}
	out.Job = *job
	return &out, nil
}

// FetchByCompanyID retrieves jobs for a specific company (employer's jobs only), any status
func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID int64, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs WHERE company_id = $1 ORDER BY posted_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update saves the editable fields. A nil skills slice leaves the skill set alone.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job, skills []domain.SkillAssignment) error {
	var resolved []resolvedSkill
	if skills != nil {
		var err error
		if resolved, err = resolveSkillSet(ctx, r.db, skills); err != nil {
			return err
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE jobs SET
		category_id = $2,
		title = $3,
		description = $4,
		location = $5,
		job_type = $6,
		experience_level = $7,
		salary_min = $8,
		salary_max = $9,
		salary_currency = $10,
		remote = $11,
		updated_at = $12
	WHERE id = $1`
	result, err := tx.Exec(ctx, query,
		job.ID, job.CategoryID, job.Title, job.Description, job.Location, job.JobType, nullIfEmpty(job.ExperienceLevel),
		job.SalaryMin, job.SalaryMax, job.SalaryCurrency, job.Remote, job.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if skills != nil {
		if err := replaceSkillSet(ctx, tx, domain.EntityJob, job.ID, resolved); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *jobRepo) Close(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE jobs SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Reactivate(ctx context.Context, id int64, expiresAt time.Time) error {
	query := `UPDATE jobs SET is_active = TRUE, expires_at = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, expiresAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeactivateExpired flips is_active on postings whose expiry has passed. Running it twice is a no-op.
func (r *jobRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE jobs SET is_active = FALSE, updated_at = $1 WHERE is_active AND expires_at < $1`
	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired jobs: %w", err)
	}
	return result.RowsAffected(), nil
}

// RecountApplications rewrites application_count wherever it drifted from the ledger.
func (r *jobRepo) RecountApplications(ctx context.Context) (int64, error) {
	query := `
		UPDATE jobs j SET application_count = counted.n
		FROM (
			SELECT j2.id, COUNT(a.id) AS n
			FROM jobs j2
			LEFT JOIN applications a ON a.job_id = j2.id
			GROUP BY j2.id
		) counted
		WHERE counted.id = j.id AND j.application_count <> counted.n`
	result, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to recount applications: %w", err)
	}
	return result.RowsAffected(), nil
}
