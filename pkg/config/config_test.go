package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{"CONFIG_PATH", "PORT", "DATABASE_URL", "DB_MAX_CONNS", "MIGRATE_ON_START", "REDIS_URL",
	"CACHE_TTL_SECONDS", "JWT_SECRET", "JWT_ISSUER", "JWT_TTL_MINUTES", "LOG_LEVEL"}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "cvbuilder", cfg.JWTIssuer)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://cv:cv@localhost:5432/cv")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://cv:cv@localhost:5432/cv", cfg.DatabaseURL)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", writeFile(t, `
http:
  port: "7000"
postgres:
  url: postgres://file/cv
  migrate_on_start: false
redis:
  cache_ttl_seconds: 60
jwt:
  issuer: file-issuer
log:
  level: warn
`))
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7100", cfg.Port)
	assert.Equal(t, "postgres://file/cv", cfg.DatabaseURL)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "file-issuer", cfg.JWTIssuer)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, 10, cfg.DBMaxConns)
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_PATH", writeFile(t, "http:\n  prot: \"7000\"\n"))
	_, err = Load()
	assert.Error(t, err, "unknown keys are rejected")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
