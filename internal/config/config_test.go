package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offline sets the minimum environment for a config that needs no API key
func offline(t *testing.T) {
	t.Helper()
	t.Setenv("ORACLE_TYPE", OracleDictionary)
}

func TestFromEnvDefaults(t *testing.T) {
	offline(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, 2*time.Hour, cfg.Storage.RoundTTL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Oracle.Model)
	assert.Equal(t, 1024, cfg.Oracle.CacheSize)
	assert.Equal(t, 5, cfg.Game.StartingLives)
	assert.Equal(t, 2, cfg.Game.MaxAIAttempts)
	assert.Equal(t, 2*time.Second, cfg.Game.AIThinkDelay)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Sentry.DSN)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", StorageRedis)
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ORACLE_TYPE", OracleChat)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("STARTING_LIVES", "3")
	t.Setenv("AI_THINK_DELAY", "0s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageRedis, cfg.Storage.Type)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
	assert.Equal(t, "sk-test", cfg.Oracle.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Oracle.BaseURL)
	assert.Equal(t, 3, cfg.Game.StartingLives)
	assert.Equal(t, time.Duration(0), cfg.Game.AIThinkDelay)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestFromEnvInvalidNumbersUseDefault(t *testing.T) {
	offline(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("AI_RETRY_DELAY", "soon")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Game.AIRetryDelay)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"chat oracle without key", map[string]string{"ORACLE_TYPE": OracleChat, "OPENAI_API_KEY": ""}},
		{"unknown oracle", map[string]string{"ORACLE_TYPE": "crystal-ball"}},
		{"redis without url", map[string]string{"ORACLE_TYPE": OracleDictionary, "STORAGE_TYPE": StorageRedis, "REDIS_URL": ""}},
		{"unknown storage", map[string]string{"ORACLE_TYPE": OracleDictionary, "STORAGE_TYPE": "tape"}},
		{"port out of range", map[string]string{"ORACLE_TYPE": OracleDictionary, "PORT": "70000"}},
		{"no lives", map[string]string{"ORACLE_TYPE": OracleDictionary, "STARTING_LIVES": "0"}},
		{"no AI attempts", map[string]string{"ORACLE_TYPE": OracleDictionary, "AI_MAX_ATTEMPTS": "0"}},
		{"negative cache", map[string]string{"ORACLE_TYPE": OracleDictionary, "ORACLE_CACHE_SIZE": "-1"}},
		{"negative delay", map[string]string{"ORACLE_TYPE": OracleDictionary, "AI_THINK_DELAY": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ORACLE_TYPE=dictionary\nSTARTING_LIVES=7\n"), 0o600))
	t.Chdir(dir)

	// godotenv skips variables that are already set, even to "".
	// t.Setenv restores them after the test.
	t.Setenv("ORACLE_TYPE", "")
	t.Setenv("STARTING_LIVES", "")
	require.NoError(t, os.Unsetenv("ORACLE_TYPE"))
	require.NoError(t, os.Unsetenv("STARTING_LIVES"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, OracleDictionary, cfg.Oracle.Type)
	assert.Equal(t, 7, cfg.Game.StartingLives)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	offline(t)

	_, err := Load()
	assert.NoError(t, err)
}
