package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "#33", cfg.Auth.AccessKey)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.RequireToken, "site writes are open by default")
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Len(t, cfg.Auth.TokenSecret, 64, "an empty secret is replaced by a random one")
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "Memory")
	t.Setenv("PUBLIC_API_URL", "https://pfas.example/api/")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TOKEN_SECRET", "fixed")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("REQUIRE_ADMIN_TOKEN", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "https://pfas.example/api", cfg.PublicAPIURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "fixed", cfg.Auth.TokenSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.RequireToken)
	assert.Zero(t, cfg.RateLimitRequests)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("ttl", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "0s")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{}
	cfg.DB.Host = "db"
	cfg.DB.Port = 5433
	cfg.DB.User = "pfas"
	cfg.DB.Password = "p@ss/word"
	cfg.DB.Name = "sites"
	cfg.DB.SSLMode = "require"

	assert.Equal(t, "postgres://pfas:p%40ss%2Fword@db:5433/sites?sslmode=require", cfg.DatabaseURL())
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("DEBUG")
	require.NoError(t, err)

	_, err = NewLogger("chatty")
	assert.Error(t, err)
}
