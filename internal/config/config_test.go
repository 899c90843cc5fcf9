package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/sheetmap/internal/config"
	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "sheetmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func Test_LoadDefaults(t *testing.T) {
	t.Setenv("SHEETMAP_CONFIG", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Empty(t, cfg.MetricsFile)
	assert.Empty(t, cfg.Sheets)
	assert.Empty(t, cfg.Columns)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func Test_LoadFromEnv(t *testing.T) {
	t.Setenv("SHEETMAP_CONFIG", "")
	t.Setenv("SHEETMAP_ENV", "local")
	t.Setenv("SHEETMAP_METRICS_FILE", "/tmp/sheetmap.prom")
	t.Setenv("SHEETMAP_SHEETS_VOLUNTEERS", "People")
	t.Setenv("SHEETMAP_POSTGRES_HOST", "testHost")
	t.Setenv("SHEETMAP_POSTGRES_PORT", "12345")
	t.Setenv("SHEETMAP_POSTGRES_USER", "admin")
	t.Setenv("SHEETMAP_POSTGRES_PASSWORD", "adminpass")
	t.Setenv("SHEETMAP_POSTGRES_DB_NAME", "testName")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "/tmp/sheetmap.prom", cfg.MetricsFile)
	assert.Equal(t, map[models.Kind]string{models.KindVolunteers: "People"}, cfg.Sheets)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
}

func Test_LoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfig(t, `
env: production
sheets:
  books: Distribution Points
  schools: Schools 2024
columns:
  books:
    lat: Breitengrad
    lng: Längengrad
  volunteers:
    name: Volunteer Name
postgres:
  host: db.internal
`)
	t.Setenv("SHEETMAP_CONFIG", path)
	t.Setenv("SHEETMAP_POSTGRES_HOST", "override")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, map[models.Kind]string{
		models.KindBooks:   "Distribution Points",
		models.KindSchools: "Schools 2024",
	}, cfg.Sheets)
	assert.Equal(t, map[models.Kind]models.Mapping{
		models.KindBooks: {
			models.RoleLatitude:  "Breitengrad",
			models.RoleLongitude: "Längengrad",
		},
		models.KindVolunteers: {models.RoleName: "Volunteer Name"},
	}, cfg.Columns)
	assert.Equal(t, "override", cfg.Database.Host, "environment wins over the file")
}

func TestLoad_Errors(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("SHEETMAP_CONFIG", filepath.Join(filet.TmpDir(t, ""), "absent.yaml"))

		cfg, err := config.Load()

		require.Nil(t, cfg)
		require.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("unknown dataset kind", func(t *testing.T) {
		t.Setenv("SHEETMAP_CONFIG", writeConfig(t, "sheets:\n  trees: Forest\n"))

		cfg, err := config.Load()

		require.Nil(t, cfg)
		require.ErrorContains(t, err, `unknown dataset kind: "trees"`)
	})

	t.Run("role not valid for kind", func(t *testing.T) {
		t.Setenv("SHEETMAP_CONFIG", writeConfig(t, "columns:\n  books:\n    students: Pupils\n"))

		cfg, err := config.Load()

		require.Nil(t, cfg)
		require.ErrorIs(t, err, config.ErrUnknownRole)
	})
}

func TestPostgresConfig_DSN(t *testing.T) {
	pg := config.PostgresConfig{
		Host:     "db",
		Port:     "5433",
		User:     "admin",
		Password: "p@ss word",
		Name:     "heatmap",
		SSLMode:  "require",
	}

	assert.Equal(t, "postgres://admin:p%40ss%20word@db:5433/heatmap?sslmode=require", pg.DSN())
}
