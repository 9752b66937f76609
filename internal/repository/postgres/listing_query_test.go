package postgres

import (
	"strings"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listingNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestBuildRecentQuery(t *testing.T) {
	t.Run("Should restrict to open jobs without filters", func(t *testing.T) {
		sql, args, err := buildRecentQuery(domain.JobFilter{}, 0, listingNow, 50, 0)
		require.NoError(t, err)

		assert.Contains(t, sql, "j.is_active = $1")
		assert.Contains(t, sql, "(j.expires_at IS NULL OR j.expires_at > $2)")
		assert.Contains(t, sql, "FALSE AS has_applied")
		assert.Contains(t, sql, "ORDER BY j.posted_at DESC, j.id DESC")
		assert.Contains(t, sql, "LIMIT 50 OFFSET 0")
		assert.NotContains(t, sql, "ILIKE")
		assert.Equal(t, []any{true, listingNow}, args)
	})

	t.Run("Should add every filter as a bound parameter", func(t *testing.T) {
		category := int64(4)
		remote := true
		filter := domain.JobFilter{CategoryID: &category, Search: "go", JobType: "contract", Remote: &remote}

		sql, args, err := buildRecentQuery(filter, 0, listingNow, 10, 20)
		require.NoError(t, err)

		assert.Contains(t, sql, "j.category_id = $3")
		assert.Contains(t, sql, "j.job_type = $4")
		assert.Contains(t, sql, "j.remote = $5")
		assert.Contains(t, sql, "(j.title ILIKE $6 OR j.description ILIKE $7 OR j.location ILIKE $8)")
		assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
		assert.Equal(t, []any{true, listingNow, int64(4), "contract", true, "%go%", "%go%", "%go%"}, args)
	})

	t.Run("Should number the viewer argument before the filters", func(t *testing.T) {
		sql, args, err := buildRecentQuery(domain.JobFilter{}, 42, listingNow, 50, 0)
		require.NoError(t, err)

		assert.Contains(t, sql, "a.candidate_id = $1) AS has_applied")
		assert.Contains(t, sql, "j.is_active = $2")
		assert.Equal(t, []any{int64(42), true, listingNow}, args)
	})

	t.Run("Should never splice search text into the statement", func(t *testing.T) {
		evil := "x'; DROP TABLE jobs; --"
		sql, args, err := buildRecentQuery(domain.JobFilter{Search: evil}, 0, listingNow, 50, 0)
		require.NoError(t, err)

		assert.NotContains(t, sql, "DROP TABLE")
		assert.Contains(t, args, "%"+evil+"%")
	})
}

func TestSearchEscapesWildcards(t *testing.T) {
	_, args, err := buildCountQuery(domain.JobFilter{Search: `100%_sure\`}, listingNow)
	require.NoError(t, err)
	assert.Contains(t, args, `%100\%\_sure\\%`)
}

func TestBuildCountQuery(t *testing.T) {
	sql, _, err := buildCountQuery(domain.JobFilter{JobType: "full_time"}, listingNow)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "SELECT COUNT(*) FROM jobs j WHERE"))
	assert.NotContains(t, sql, "ORDER BY")
	assert.NotContains(t, sql, "LIMIT")
}

func TestBuildScoringQuery(t *testing.T) {
	sql, args, err := buildScoringQuery(domain.JobFilter{}, listingNow)
	require.NoError(t, err)

	assert.Contains(t, sql, "FILTER (WHERE js.is_required)")
	assert.Contains(t, sql, "LEFT JOIN job_skills js ON js.job_id = j.id")
	assert.Contains(t, sql, "GROUP BY j.id")
	assert.Equal(t, []any{true, listingNow}, args)
}

func TestBuildSummariesQuery(t *testing.T) {
	sql, args, err := buildSummariesQuery([]int64{3, 1, 2}, 9)
	require.NoError(t, err)

	assert.Contains(t, sql, "j.id IN ($2,$3,$4)")
	assert.Equal(t, []any{int64(9), int64(3), int64(1), int64(2)}, args)
}
