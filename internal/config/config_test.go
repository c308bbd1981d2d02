package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_SQLite(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "sqlite3"
path = "salon.db"

[booking]
bulk_granularity_minutes = 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Booking.BulkGranularityMinutes)
	assert.Equal(t, 5, cfg.Booking.SlotLockTimeout)
	assert.Equal(t, "file:salon.db?_foreign_keys=on&_busy_timeout=5000", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "postgres"
host = "db"
dbname = "salon"
`)
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "host=pg.internal")
}

func TestLoad_InvalidEnv(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "sqlite3"
path = "x.db"
`)
	t.Setenv("HTTP_PORT", "not-a-number")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.Driver = "sqlite3"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.DBName = "salon"
	cfg.Booking.BulkGranularityMinutes = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.DBName = "salon"
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.LockTTL = 0
	assert.EqualError(t, cfg.Validate(), "redis.lock_ttl must be positive when redis is enabled")

	cfg.Redis.LockTTL = 10
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Database.DBName = "salon"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
