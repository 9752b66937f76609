package database

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "0001_init", migrations[0].Version)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}

	schema := migrations[0].SQL
	assert.Contains(t, schema, "ON skills ((LOWER(name)))")
	assert.Contains(t, schema, "CHECK (application_count >= 0)")
	assert.Contains(t, schema, "UNIQUE (candidate_id, job_id)")
}

func TestLoadMigrationsOrdersAndSkipsNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql": {Data: []byte("SELECT 2;")},
		"m/0001_a.sql": {Data: []byte("SELECT 1;")},
		"m/README.md":  {Data: []byte("docs")},
		"m/0003_c.sql": {Data: []byte("SELECT 3;")},
	}

	migrations, err := loadMigrations(fsys, "m")
	require.NoError(t, err)

	var versions []string
	for _, m := range migrations {
		versions = append(versions, m.Version)
	}
	assert.Equal(t, []string{"0001_a", "0002_b", "0003_c"}, versions)
}

func TestSeedCategories(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)

	var seed string
	for _, m := range migrations {
		if strings.Contains(m.Version, "seed_categories") {
			seed = m.SQL
		}
	}
	require.NotEmpty(t, seed)
	for _, name := range []string{"Software Development", "Design", "Marketing", "Product Management", "Sales",
		"Data Science", "Customer Support", "Operations", "Human Resources", "Finance"} {
		assert.Contains(t, seed, "'"+name+"'")
	}
}
