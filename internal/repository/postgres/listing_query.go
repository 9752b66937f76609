package postgres

import (
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"

	sqrl "github.com/Masterminds/squirrel"
)

var psql = sqrl.StatementBuilder.PlaceholderFormat(sqrl.Dollar)

// summaryColumns must stay in step with scanSummary.
var summaryColumns = []string{
	"j.id", "j.company_id", "j.category_id", "j.title", "j.location", "j.job_type",
	"j.salary_min", "j.salary_max", "j.salary_currency", "j.remote",
	"COALESCE(c.name, 'Unknown Company') AS company_name", "c.logo_url",
	"j.posted_at", "j.expires_at", "j.application_count",
}

// openJobs restricts to postings a candidate may see at now plus the optional filters.
// Expiry is compared here so expired rows drop out before the reaper runs.
func openJobs(filter domain.JobFilter, now time.Time) sqrl.Sqlizer {
	where := sqrl.And{
		sqrl.Eq{"j.is_active": true},
		sqrl.Or{sqrl.Eq{"j.expires_at": nil}, sqrl.Gt{"j.expires_at": now}},
	}
	if filter.CategoryID != nil {
		where = append(where, sqrl.Eq{"j.category_id": *filter.CategoryID})
	}
	if filter.JobType != "" {
		where = append(where, sqrl.Eq{"j.job_type": filter.JobType})
	}
	if filter.Remote != nil {
		where = append(where, sqrl.Eq{"j.remote": *filter.Remote})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		where = append(where, sqrl.Or{
			sqrl.ILike{"j.title": pattern},
			sqrl.ILike{"j.description": pattern},
			sqrl.ILike{"j.location": pattern},
		})
	}
	return where
}

func hasAppliedColumn(viewerID int64) sqrl.Sqlizer {
	if viewerID <= 0 {
		return sqrl.Expr("FALSE AS has_applied")
	}
	return sqrl.Expr("EXISTS(SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.candidate_id = ?) AS has_applied", viewerID)
}

func summarySelect(viewerID int64) sqrl.SelectBuilder {
	return psql.Select(summaryColumns...).
		Column(hasAppliedColumn(viewerID)).
		From("jobs j").
		LeftJoin("companies c ON c.id = j.company_id")
}

func buildRecentQuery(filter domain.JobFilter, viewerID int64, now time.Time, limit, offset int) (string, []any, error) {
	return summarySelect(viewerID).
		Where(openJobs(filter, now)).
		OrderBy("j.posted_at DESC", "j.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func buildCountQuery(filter domain.JobFilter, now time.Time) (string, []any, error) {
	return psql.Select("COUNT(*)").From("jobs j").Where(openJobs(filter, now)).ToSql()
}

// buildScoringQuery projects every open filtered job with the ids of its required skills.
func buildScoringQuery(filter domain.JobFilter, now time.Time) (string, []any, error) {
	return psql.Select(
		"j.id",
		"j.posted_at",
		"COALESCE(array_agg(js.skill_id) FILTER (WHERE js.is_required), '{}') AS required_skill_ids",
	).
		From("jobs j").
		LeftJoin("job_skills js ON js.job_id = j.id").
		Where(openJobs(filter, now)).
		GroupBy("j.id").
		ToSql()
}

func buildSummariesQuery(ids []int64, viewerID int64) (string, []any, error) {
	return summarySelect(viewerID).Where(sqrl.Eq{"j.id": ids}).ToSql()
}
