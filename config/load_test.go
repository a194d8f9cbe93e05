package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFilesUsesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "created_at", cfg.Scopes.CreatedAtColumn)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMergesEnvironmentFileAndVariables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "environments"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(`
database:
  name: shop
  port: 5433
scopes:
  created_at_column: inserted_at
  active_check:
    - is_active=1
    - status=Delivered|Shipped
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "environments", "staging.yaml"), []byte(`
database:
  name: shop_staging
`), 0o644))

	t.Setenv("APP_ENV", "staging")
	t.Setenv("SCOPES_TIMEZONE", "UTC")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "shop_staging", cfg.Database.Name)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "inserted_at", cfg.Scopes.CreatedAtColumn)
	assert.Equal(t, []string{"is_active=1", "status=Delivered|Shipped"}, cfg.Scopes.ActiveCheck)
	assert.Equal(t, "UTC", cfg.Scopes.Timezone)

	loc, err := cfg.Scopes.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLocationRejectsUnknownZone(t *testing.T) {
	_, err := ScopeConfig{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}
