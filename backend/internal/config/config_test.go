package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "PING_MESSAGE", "JWT_SECRET", "LOG_LEVEL", "OTEL_ENABLED", "CORS_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ping", cfg.PingMessage)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PING_MESSAGE", "pong")
	t.Setenv("FAKE_POSTS", "5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "pong", cfg.PingMessage)
	assert.Equal(t, 5, cfg.FakePosts)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENVIRONMENT=staging\n"), 0600))
	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("ENVIRONMENT")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
}
