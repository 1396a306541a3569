package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")

	cfg := LoadConfig()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "cloudinary", cfg.StorageDriver)
	assert.Equal(t, 10, cfg.LoginRateLimit)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SIGNED_URL_TTL", "bogus")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("LOGIN_RATE_LIMIT", "3")

	cfg := LoadConfig()
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.SignedURLTTL)
	assert.Equal(t, "s3", cfg.StorageDriver)
	assert.Equal(t, 3, cfg.LoginRateLimit)
}
