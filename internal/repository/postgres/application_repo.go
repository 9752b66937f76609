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

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create records the application only if the job is open at now, and bumps the job's counter
// in the same transaction. The unique (candidate_id, job_id) constraint decides concurrent duplicates.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application, now time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO applications (job_id, candidate_id, cover_letter, status, applied_at, updated_at)
		SELECT j.id, $2::bigint, $3::text, $4::varchar, $5::timestamptz, $5::timestamptz
		FROM jobs j
		WHERE j.id = $1 AND j.is_active AND (j.expires_at IS NULL OR j.expires_at > $5)
		RETURNING id, status, applied_at, updated_at`

	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}

	err = tx.QueryRow(ctx, query, app.JobID, app.CandidateID, app.CoverLetter, app.Status, now).
		Scan(&app.ID, &app.Status, &app.AppliedAt, &app.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrJobNotApplicable
	case isUniqueViolation(err):
		return domain.ErrDuplicateApplication
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to insert application: %w", err)
	}

	if err := adjustApplicationCount(ctx, tx, app.JobID, 1); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete withdraws an application and decrements the job's counter in the same transaction.
func (r *applicationRepo) Delete(ctx context.Context, candidateID, jobID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM applications WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := adjustApplicationCount(ctx, tx, jobID, -1); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// adjustApplicationCount is the only writer of jobs.application_count outside the repair recount.
func adjustApplicationCount(ctx context.Context, tx pgx.Tx, jobID int64, delta int) error {
	query := `UPDATE jobs SET application_count = application_count + $2 WHERE id = $1`
	if _, err := tx.Exec(ctx, query, jobID, delta); err != nil {
		return fmt.Errorf("failed to adjust application count: %w", err)
	}
	return nil
}

// GetByID retrieves an application by ID with the job title
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.cover_letter, a.status, a.applied_at, a.updated_at,
			j.title as job_title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.Status, &app.AppliedAt, &app.UpdatedAt,
		&app.JobTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByJobID retrieves all applications for a job, newest first
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.cover_letter, a.status, a.applied_at, a.updated_at,
			j.title as job_title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`
	return r.list(ctx, query, jobID)
}

// GetByCandidateID retrieves all applications of a candidate with job titles
func (r *applicationRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.cover_letter, a.status, a.applied_at, a.updated_at,
			j.title as job_title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.candidate_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`
	return r.list(ctx, query, candidateID)
}

func (r *applicationRepo) list(ctx context.Context, query string, arg int64) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.Status, &app.AppliedAt, &app.UpdatedAt,
			&app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the job/candidate combination
func (r *applicationRepo) CheckExists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, candidateID).Scan(&exists)
	return exists, err
}

// UpdateStatus updates the status of an application
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
