package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

// ============================================================================
// Vocabulary
// ============================================================================

func (r *skillRepo) Resolve(ctx context.Context, name string) (*domain.Skill, error) {
	return resolveSkill(ctx, r.db, name)
}

// resolveSkill finds or creates the canonical skill row for name.
// A concurrent creator of the same key makes our insert a no-op; the row it committed is read back.
func resolveSkill(ctx context.Context, q querier, name string) (*domain.Skill, error) {
	name = domain.NormalizeSkillName(name)
	if name == "" {
		return nil, domain.ErrInvalidSkillName
	}

	const selectQuery = `SELECT id, name, created_at FROM skills WHERE LOWER(name) = LOWER($1)`
	const insertQuery = `
		INSERT INTO skills (name) VALUES ($1)
		ON CONFLICT ((LOWER(name))) DO NOTHING
		RETURNING id, name, created_at`

	var s domain.Skill
	err := q.QueryRow(ctx, selectQuery, name).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up skill %q: %w", name, err)
	}

	err = q.QueryRow(ctx, insertQuery, name).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to create skill %q: %w", name, err)
	}

	if err := q.QueryRow(ctx, selectQuery, name).Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to read back skill %q: %w", name, err)
	}
	return &s, nil
}

func (r *skillRepo) Search(ctx context.Context, query string, limit int) ([]domain.Skill, error) {
	if limit <= 0 || limit > domain.SkillSearchLimit {
		limit = domain.SkillSearchLimit
	}

	sqlQuery := `
		SELECT id, name, created_at
		FROM skills
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, sqlQuery, "%"+escapeLike(strings.TrimSpace(query))+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search skills: %w", err)
	}
	defer rows.Close()

	results := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill rows: %w", err)
	}
	return results, nil
}

// ============================================================================
// Entity skill sets
// ============================================================================

func (r *skillRepo) ReplaceEntitySkills(ctx context.Context, kind domain.EntityKind, entityID int64, skills []domain.SkillAssignment) error {
	resolved, err := resolveSkillSet(ctx, r.db, skills)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := replaceSkillSet(ctx, tx, kind, entityID, resolved); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type resolvedSkill struct {
	ID       int64
	Required bool
}

// resolutionOrder normalizes the assignments and sorts them by comparison key.
func resolutionOrder(skills []domain.SkillAssignment) []domain.SkillAssignment {
	ordered := domain.NormalizeAssignments(skills)
	sort.Slice(ordered, func(i, j int) bool {
		return domain.SkillKey(ordered[i].Name) < domain.SkillKey(ordered[j].Name)
	})
	return ordered
}

// resolveSkillSet resolves every name outside the caller's transaction.
// Each resolve commits on its own, so no vocabulary lock is held while the set is replaced.
func resolveSkillSet(ctx context.Context, db *pgxpool.Pool, skills []domain.SkillAssignment) ([]resolvedSkill, error) {
	ordered := resolutionOrder(skills)
	resolved := make([]resolvedSkill, 0, len(ordered))
	for _, a := range ordered {
		s, err := resolveSkill(ctx, db, a.Name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, resolvedSkill{ID: s.ID, Required: a.Required})
	}
	return resolved, nil
}

// replaceSkillSet clears the entity's associations and inserts the resolved set.
// It must run inside a transaction so a failure leaves the previous set untouched.
func replaceSkillSet(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, entityID int64, skills []resolvedSkill) error {
	ids := make([]int64, 0, len(skills))
	required := make([]bool, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.ID)
		required = append(required, s.Required)
	}

	var deleteQuery, insertQuery string
	var args []any
	switch kind {
	case domain.EntityCandidate:
		deleteQuery = `DELETE FROM candidate_skills WHERE candidate_id = $1`
		insertQuery = `
			INSERT INTO candidate_skills (candidate_id, skill_id)
			SELECT $1, s.id FROM unnest($2::bigint[]) AS s(id)
			ON CONFLICT DO NOTHING`
		args = []any{entityID, pq.Array(ids)}
	case domain.EntityJob:
		deleteQuery = `DELETE FROM job_skills WHERE job_id = $1`
		insertQuery = `
			INSERT INTO job_skills (job_id, skill_id, is_required)
			SELECT $1, s.id, s.required FROM unnest($2::bigint[], $3::boolean[]) AS s(id, required)
			ON CONFLICT DO NOTHING`
		args = []any{entityID, pq.Array(ids), pq.Array(required)}
	default:
		return fmt.Errorf("unknown skill owner %q", kind)
	}

	if _, err := tx.Exec(ctx, deleteQuery, entityID); err != nil {
		return fmt.Errorf("failed to clear %s skills: %w", kind, err)
	}
	if len(ids) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, insertQuery, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to insert %s skills: %w", kind, err)
	}
	return nil
}

func (r *skillRepo) GetEntitySkills(ctx context.Context, kind domain.EntityKind, entityID int64) ([]domain.EntitySkill, error) {
	return getEntitySkills(ctx, r.db, kind, entityID)
}

func getEntitySkills(ctx context.Context, q querier, kind domain.EntityKind, entityID int64) ([]domain.EntitySkill, error) {
	var query string
	switch kind {
	case domain.EntityCandidate:
		query = `
			SELECT s.id, s.name, TRUE
			FROM candidate_skills cs
			JOIN skills s ON s.id = cs.skill_id
			WHERE cs.candidate_id = $1
			ORDER BY LOWER(s.name)`
	case domain.EntityJob:
		query = `
			SELECT s.id, s.name, js.is_required
			FROM job_skills js
			JOIN skills s ON s.id = js.skill_id
			WHERE js.job_id = $1
			ORDER BY js.is_required DESC, LOWER(s.name)`
	default:
		return nil, fmt.Errorf("unknown skill owner %q", kind)
	}

	rows, err := q.Query(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []domain.EntitySkill{}
	for rows.Next() {
		var s domain.EntitySkill
		if err := rows.Scan(&s.SkillID, &s.Name, &s.Required); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *skillRepo) GetCandidateSkillIDs(ctx context.Context, candidateID int64) ([]int64, error) {
	query := `SELECT COALESCE(array_agg(skill_id), '{}') FROM candidate_skills WHERE candidate_id = $1`
	var ids []int64
	if err := r.db.QueryRow(ctx, query, candidateID).Scan(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
