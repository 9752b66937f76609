package postgres

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type listingRepo struct {
	db *pgxpool.Pool
}

// NewListingRepository serves the read side of job listings.
func NewListingRepository(db *pgxpool.Pool) domain.ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) ListRecent(ctx context.Context, filter domain.JobFilter, viewerID int64, now time.Time, limit, offset int) ([]domain.JobSummary, int64, error) {
	query, args, err := buildRecentQuery(filter, viewerID, now, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs, err := collectSummaries(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := buildCountQuery(filter, now)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *listingRepo) ListScoringRows(ctx context.Context, filter domain.JobFilter, now time.Time) ([]domain.ScoringRow, error) {
	query, args, err := buildScoringQuery(filter, now)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring rows: %w", err)
	}
	defer rows.Close()

	var out []domain.ScoringRow
	for rows.Next() {
		var row domain.ScoringRow
		if err := rows.Scan(&row.JobID, &row.PostedAt, &row.RequiredSkillIDs); err != nil {
			return nil, fmt.Errorf("failed to scan scoring row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetSummaries hydrates the given jobs. Order of the result is unspecified.
func (r *listingRepo) GetSummaries(ctx context.Context, ids []int64, viewerID int64) ([]domain.JobSummary, error) {
	if len(ids) == 0 {
		return []domain.JobSummary{}, nil
	}
	query, args, err := buildSummariesQuery(ids, viewerID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load job summaries: %w", err)
	}
	return collectSummaries(rows)
}

func collectSummaries(rows pgx.Rows) ([]domain.JobSummary, error) {
	defer rows.Close()

	jobs := []domain.JobSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job summary: %w", err)
		}
		jobs = append(jobs, s)
	}
	return jobs, rows.Err()
}

func scanSummary(row pgx.Row) (domain.JobSummary, error) {
	var s domain.JobSummary
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.CategoryID, &s.Title, &s.Location, &s.JobType,
		&s.SalaryMin, &s.SalaryMax, &s.SalaryCurrency, &s.Remote,
		&s.CompanyName, &s.CompanyLogoURL,
		&s.PostedAt, &s.ExpiresAt, &s.ApplicationCount,
		&s.HasApplied,
	)
	return s, err
}
