package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STUDIOFLOW_STORE", "SURREALDB_NAMESPACE", "REDIS_DB", "STUDIOFLOW_TIMEZONE", "STUDIOFLOW_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "studioflow", cfg.SurrealDBNamespace)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "studioflow:jobs", cfg.RedisKey)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, filepath.IsAbs(cfg.DataFile) || cfg.DataFile == "studioflow.json")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STUDIOFLOW_STORE", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("STUDIOFLOW_DATA_FILE", "/srv/jobs.json")
	t.Setenv("STUDIOFLOW_LOG_LEVEL", "warning")

	cfg := Load()
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "/srv/jobs.json", cfg.DataFile)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	assert.Equal(t, 0, Load().RedisDB)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Config{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "UTC", Config{Timezone: "UTC"}.Location().String())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := `# studio settings
STUDIOFLOW_TEST_NAME="Casa Foto"
export STUDIOFLOW_TEST_STORE=redis # inline comment
STUDIOFLOW_TEST_KEEP=from-file
STUDIOFLOW_TEST_SINGLE='a # b'
not a pair
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("STUDIOFLOW_TEST_KEEP", "from-env")
	for _, k := range []string{"STUDIOFLOW_TEST_NAME", "STUDIOFLOW_TEST_STORE", "STUDIOFLOW_TEST_SINGLE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	assert.Equal(t, "Casa Foto", os.Getenv("STUDIOFLOW_TEST_NAME"))
	assert.Equal(t, "redis", os.Getenv("STUDIOFLOW_TEST_STORE"))
	assert.Equal(t, "from-env", os.Getenv("STUDIOFLOW_TEST_KEEP"))
	assert.Equal(t, "a # b", os.Getenv("STUDIOFLOW_TEST_SINGLE"))
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("job created", "job_id", "abc")

	assert.Contains(t, stderr.String(), "job created")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, file.String(), `"job_id":"abc"`)
}

func TestSetupLoggerFallsBackToStderr(t *testing.T) {
	logger, cleanup := SetupLogger(filepath.Join(t.TempDir(), "missing-dir", "\x00bad"), slog.LevelInfo, slog.LevelInfo)
	require.NotNil(t, logger)
	assert.NoError(t, cleanup())
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "studioflow.log")
	logger, cleanup := SetupLogger(path, slog.LevelError, slog.LevelDebug)
	logger.Debug("saved jobs", "count", 2)
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"saved jobs"`)
}
