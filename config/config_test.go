package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.ListingRecentPageSize)
	assert.Equal(t, 10, cfg.ListingMatchPageSize)
	assert.Equal(t, 10, cfg.MatchedJobsLimit)
	assert.Equal(t, 30, cfg.JobLifetimeDays)
	assert.Equal(t, "@every 15m", cfg.ReaperSchedule)
	assert.Equal(t, 30*time.Second, cfg.ReaperTimeout)
	assert.True(t, cfg.RunMigrations)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LISTING_MATCH_PAGE_SIZE", "25")
	t.Setenv("REAPER_SCHEDULE", "")
	t.Setenv("REAPER_TIMEOUT", "2m")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("FRONTEND_URL", "https://jobs.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.ListingMatchPageSize)
	assert.Equal(t, "", cfg.ReaperSchedule)
	assert.Equal(t, 2*time.Minute, cfg.ReaperTimeout)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "https://jobs.example.com", cfg.FrontendURL)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "ten")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}
