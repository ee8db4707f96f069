package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.False(t, cfg.Auth.AllowSelfRole)
	assert.Equal(t, "admin@lrms.com", cfg.Seed.AdminEmail)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "2h")
	t.Setenv("AUTH_ALLOW_SELF_ROLE", "true")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.True(t, cfg.Auth.AllowSelfRole)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidate(t *testing.T) {
	valid := Config{
		App:  AppConfig{Env: "production"},
		Auth: AuthConfig{JWTSecret: "prod-secret", AccessTokenTTL: time.Hour},
	}
	assert.NoError(t, valid.Validate())

	defaultSecret := valid
	defaultSecret.Auth.JWTSecret = defaultJWTSecret
	assert.Error(t, defaultSecret.Validate())

	emptySecret := valid
	emptySecret.Auth.JWTSecret = ""
	assert.Error(t, emptySecret.Validate())

	noTTL := valid
	noTTL.Auth.AccessTokenTTL = 0
	assert.Error(t, noTTL.Validate())
}
