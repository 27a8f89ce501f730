package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "HTTP_ADDR", "DATABASE_URL", "JWT_SECRET", "JWT_ISSUER", "REDIS_URL",
		"RABBIT_URL", "RABBIT_EXCHANGE", "S3_BUCKET", "S3_USE_PATH_STYLE", "RL_ENABLED",
		"RL_LIMIT", "RL_WINDOW", "DB_MIGRATE", "CORS_ALLOWED_ORIGINS", "HTTP_READ_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Equal(t, "missing DATABASE_URL", err.Error())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/vidshare")
		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Equal(t, "missing JWT_SECRET", err.Error())
	})

	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/vidshare")
		t.Setenv("JWT_SECRET", "dev-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.AppEnv)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "vidshare.events", cfg.RabbitExchange)
		assert.True(t, cfg.DBMigrate)
		assert.True(t, cfg.RLEnabled)
		assert.Equal(t, 120, cfg.RLLimit)
		assert.Equal(t, time.Minute, cfg.RLWindow)
		assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
		assert.False(t, cfg.AssetStoreEnabled())
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/vidshare")
		t.Setenv("JWT_SECRET", "dev-secret")
		t.Setenv("RL_ENABLED", "off")
		t.Setenv("RL_WINDOW", "30s")
		t.Setenv("HTTP_READ_TIMEOUT", "3s")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("S3_BUCKET", "media")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.RLEnabled)
		assert.Equal(t, 30*time.Second, cfg.RLWindow)
		assert.Equal(t, 3*time.Second, cfg.HTTPReadTimeout)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
		assert.True(t, cfg.AssetStoreEnabled())
	})

	t.Run("invalid boolean", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/vidshare")
		t.Setenv("JWT_SECRET", "dev-secret")
		t.Setenv("DB_MIGRATE", "maybe")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_MIGRATE")
	})

	t.Run("short secret outside dev", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "prod")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/vidshare")
		t.Setenv("JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
	})
}
