package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "booking")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "airline")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_WAIT_ATTEMPTS", "")
	t.Setenv("DB_WAIT_INTERVAL", "")

	cfg := Load()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DBPass, "empty password is allowed")
	assert.Equal(t, 30, cfg.DBWaitAttempts)
	assert.Equal(t, 2*time.Second, cfg.DBWaitInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASS", "hunter2")
	t.Setenv("DB_WAIT_ATTEMPTS", "5")
	t.Setenv("DB_WAIT_INTERVAL", "500ms")

	cfg := Load()

	assert.Equal(t, "hunter2", cfg.DBPass)
	assert.Equal(t, 5, cfg.DBWaitAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.DBWaitInterval)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()

	require.GreaterOrEqual(t, cfg.Capacity, 1)
	require.GreaterOrEqual(t, cfg.RefillTokens, 1)
	assert.GreaterOrEqual(t, cfg.TTL, 5*cfg.RefillInterval, "TTL must outlive the refill window")
}

func TestLoadCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	cfg := LoadCacheConfig()

	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}
