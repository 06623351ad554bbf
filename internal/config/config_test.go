package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/giglog_test")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshTTL)
	assert.Equal(t, 10*time.Minute, cfg.AuthCodeTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/giglog_test")
	t.Setenv("JWT_SECRET", "")

	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/giglog_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("AUTH_CODE_TTL", "2m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://giglog.app, https://staging.giglog.app")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 2*time.Minute, cfg.AuthCodeTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://giglog.app", "https://staging.giglog.app"}, cfg.CORSAllowedOrigins)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/giglog_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_ACCESS_TTL")
}

func TestLoadProductionGuards(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/giglog")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.ErrorContains(t, err, "at least 32 characters")

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	_, err = Load()
	assert.ErrorContains(t, err, "RESEND_API_KEY")

	t.Setenv("RESEND_API_KEY", "re_test_key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.CookieSecure)
}
