package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE", "DB_DRIVER", "DB_DSN", "DB_HOST", "DB_PORT", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "DB_AUTO_SCHEMA", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, StoragePostgres, cfg.Database.Storage)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.AutoSchema)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Zero(t, cfg.RateLimit.RPS)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE", "memory")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("DB_AUTO_SCHEMA", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")
	t.Setenv("REDIS_DB", "3")

	cfg := FromEnv()
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, StorageMemory, cfg.Database.Storage)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port, "invalid integers fall back to the default")
	assert.False(t, cfg.Database.AutoSchema)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, 4, cfg.RateLimit.Burst)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Storage: StoragePostgres, Driver: "postgres", Host: "localhost"},
		}
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.Server.Port = ""
	assert.ErrorContains(t, c.Validate(), "PORT")

	c = valid()
	c.Database.Storage = "sqlite"
	assert.ErrorContains(t, c.Validate(), "STORAGE")

	c = valid()
	c.Database.Driver = "mysql"
	assert.ErrorContains(t, c.Validate(), "DB_DRIVER")

	c = valid()
	c.Database.Host = ""
	assert.ErrorContains(t, c.Validate(), "DB_HOST")
	c.Database.DSN = "postgres://u@h/db"
	assert.NoError(t, c.Validate())

	c = valid()
	c.Database = DatabaseConfig{Storage: StorageMemory}
	assert.NoError(t, c.Validate(), "memory storage needs no database settings")

	c = valid()
	c.RateLimit = RateLimitConfig{RPS: 1, Burst: 0}
	assert.ErrorContains(t, c.Validate(), "RATE_LIMIT_BURST")
}
