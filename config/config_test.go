package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfileDefaults(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")

		cfg := Load()

		assert.Equal(t, EnvDevelopment, cfg.Environment)
		assert.True(t, cfg.App.Debug)
		assert.False(t, cfg.App.Testing)
		assert.Equal(t, "DEBUG", cfg.Monitoring.LogLevel)
		assert.Equal(t, "simple", cfg.Cache.Type)
		assert.Equal(t, "devops_demo", cfg.Database.Name)
		assert.Equal(t, 12, cfg.Security.BcryptRounds)
		assert.Equal(t, 8000, cfg.App.Port)
		assert.Equal(t, "0.0.0.0", cfg.App.Host)
		assert.Equal(t, 30*time.Second, cfg.App.Timeout)
		assert.Equal(t, 300*time.Second, cfg.Cache.DefaultTimeout)
		assert.Equal(t, 30*time.Second, cfg.Monitoring.HealthCheckInterval)
	})

	t.Run("testing", func(t *testing.T) {
		t.Setenv("APP_ENV", "testing")

		cfg := Load()

		assert.Equal(t, EnvTesting, cfg.Environment)
		assert.False(t, cfg.App.Debug)
		assert.True(t, cfg.App.Testing)
		assert.Equal(t, "DEBUG", cfg.Monitoring.LogLevel)
		assert.Equal(t, "simple", cfg.Cache.Type)
		assert.Equal(t, "devops_demo_test", cfg.Database.Name)
	})

	t.Run("staging keeps base defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")

		cfg := Load()

		assert.Equal(t, EnvStaging, cfg.Environment)
		assert.False(t, cfg.App.Debug)
		assert.Equal(t, "INFO", cfg.Monitoring.LogLevel)
		assert.Equal(t, "redis", cfg.Cache.Type)
	})

	t.Run("production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		cfg := Load()

		assert.Equal(t, EnvProduction, cfg.Environment)
		assert.False(t, cfg.App.Debug)
		assert.Equal(t, "WARNING", cfg.Monitoring.LogLevel)
		assert.Equal(t, "redis", cfg.Cache.Type)
		assert.Equal(t, 14, cfg.Security.BcryptRounds)
	})

	t.Run("unknown profile falls back to development", func(t *testing.T) {
		t.Setenv("APP_ENV", "qa")

		cfg := Load()

		assert.Equal(t, EnvDevelopment, cfg.Environment)
		assert.True(t, cfg.App.Debug)
	})

	t.Run("profile name is case-insensitive", func(t *testing.T) {
		t.Setenv("APP_ENV", "Production")

		cfg := Load()

		assert.Equal(t, EnvProduction, cfg.Environment)
	})
}

func TestEnvironmentOverridesProfileDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PORT", "9999")
	t.Setenv("DEBUG", "true")
	t.Setenv("CACHE_DEFAULT_TIMEOUT", "60")

	cfg := Load()

	assert.Equal(t, "DEBUG", cfg.Monitoring.LogLevel)
	assert.Equal(t, 9999, cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 60*time.Second, cfg.Cache.DefaultTimeout)
}

func TestMalformedValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("TIMEOUT", "3O") // letter O, not zero
	t.Setenv("REDIS_SSL", "definitely")
	t.Setenv("WORKERS", "4.5")

	cfg := Load()

	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.App.Timeout)
	assert.True(t, cfg.Redis.SSL)
	assert.Equal(t, 4, cfg.App.Workers)
}

func TestValidate(t *testing.T) {
	t.Run("accepts development defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")

		require.NoError(t, Load().Validate())
	})

	t.Run("rejects default secrets in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SECRET_KEY")
	})

	t.Run("rejects default JWT secret in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SECRET_KEY", "rotated-secret")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("accepts production with rotated secrets", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SECRET_KEY", "rotated-secret")
		t.Setenv("JWT_SECRET", "rotated-jwt-secret")

		require.NoError(t, Load().Validate())
	})

	t.Run("allows default secrets outside production", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")

		require.NoError(t, Load().Validate())
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("PORT", "70000")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("rejects non-positive workers", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("WORKERS", "-1")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "WORKERS")
	})

	t.Run("rejects unrecognized log level", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("LOG_LEVEL", "VERBOSE")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_LEVEL")
	})

	t.Run("rejects unknown cache type", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("CACHE_TYPE", "memcached")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CACHE_TYPE")
	})
}

func TestRedactedOmitsSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SECRET_KEY", "super-secret-value")
	t.Setenv("JWT_SECRET", "jwt-secret-value")
	t.Setenv("DB_PASSWORD", "db-password-value")
	t.Setenv("REDIS_PASSWORD", "redis-password-value")
	t.Setenv("CACHE_PASSWORD", "cache-password-value")

	cfg := Load()

	dump, err := json.Marshal(cfg.Redacted())
	require.NoError(t, err)

	for _, secret := range []string{
		"super-secret-value",
		"jwt-secret-value",
		"db-password-value",
		"redis-password-value",
		"cache-password-value",
	} {
		assert.NotContains(t, string(dump), secret)
	}
	assert.Contains(t, string(dump), `"environment":"production"`)
	assert.Contains(t, string(dump), `"port":8000`)
}
