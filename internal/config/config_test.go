package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "connect.sid", cfg.Session.CookieName)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://localhost:5175",
	}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "3001")
	t.Setenv("SESSION_MAX_AGE", "60000")
	t.Setenv("FRONTEND_URLS", "https://a.example.com, https://b.example.com,")
	t.Setenv("FRONTEND_URL", "https://ignored.example.com")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("CONTACT_INBOX", "support@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, time.Minute, cfg.Session.MaxAge)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, StorageDriverMemory, cfg.Database.Driver)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestLoadSingleFrontendURL(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowOrigins)
}

func TestNodeEnvFallback(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorIs(t, err, ErrDefaultSecretInProduction)
}

func TestUnknownDrivers(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}
