package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "hms.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.Auth.MaxAttempts)
	assert.Equal(t, "hms.events", cfg.Redis.Channel)
	assert.False(t, cfg.Validation.RequireSpecialChar)
	require.Len(t, cfg.Auth.Admins, 1)
	assert.Equal(t, AdminAccount{Username: "admin", Password: "Admin123"}, cfg.Auth.Admins[0])
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hms.yaml")
	content := `
database:
  driver: memory
  query_timeout: 2s
log:
  level: debug
auth:
  max_attempts: 3
  admins:
    - username: root
      password: Rootpass1
validation:
  require_special_char: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("HMS_AUTH_MAX_ATTEMPTS", "7")
	t.Setenv("HMS_DATABASE_QUERY_TIMEOUT", "750ms")
	t.Setenv("HMS_OPS_ENABLED", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 750*time.Millisecond, cfg.Database.QueryTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Auth.MaxAttempts)
	assert.True(t, cfg.Ops.Enabled)
	assert.True(t, cfg.Validation.RequireSpecialChar)
	require.Len(t, cfg.Auth.Admins, 1)
	assert.Equal(t, "root", cfg.Auth.Admins[0].Username)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	bad := *cfg
	bad.Database.Driver = "sqlite"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Redis.Enabled = true
	bad.Redis.URL = ""
	assert.Error(t, bad.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	dsn := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "hospital", SSLMode: "disable"}.DSN()
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=hospital sslmode=disable", dsn)
}
