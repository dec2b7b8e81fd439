package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "DATABASE_NAME", "PORT", "CORS_ALLOWED_ORIGINS", "MAX_BODY_BYTES", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "blog", cfg.DatabaseName)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CorsAllowedOrigins)
	assert.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "posts")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.dev , ,https://b.dev")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := Load()
	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.Equal(t, "posts", cfg.DatabaseName)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CorsAllowedOrigins)
	assert.EqualValues(t, 2048, cfg.MaxBodyBytes)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "lots")
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")

	cfg := Load()
	assert.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
