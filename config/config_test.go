package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 5*time.Second, cfg.CacheTimeout)
	assert.Equal(t, 8*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
	assert.False(t, cfg.AllowNegativeStock)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, "123456", cfg.DefaultPassword)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("JWT_EXPIRY_MIN", "30")
	t.Setenv("ALLOW_NEGATIVE_STOCK", "true")
	t.Setenv("SEED_DATA", "0")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "abc")

	cfg := LoadConfig()

	assert.Equal(t, 30*time.Minute, cfg.TokenExpiry)
	assert.True(t, cfg.AllowNegativeStock)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
}
