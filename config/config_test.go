package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentd/contentd/config"
)

func TestLoad_RequiresTokenSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	cfg, err := config.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "super-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	auth := cfg.GetAuth()
	assert.Equal(t, "super-secret", auth.GetSigningKey())
	assert.Equal(t, "HS256", auth.GetSigningMethod())
	assert.Equal(t, "access_token", auth.GetContextKey())
	assert.Equal(t, "cookie:access_token", auth.GetTokenLookup())
	assert.Equal(t, 24, auth.GetTokenExpiration())

	assert.Equal(t, "8080", cfg.GetServer().GetPort())
	assert.Equal(t, 5*time.Second, cfg.GetPersistence().GetPingTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "super-secret")
	t.Setenv("COOKIE_NAME", "session")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DSN", "file:test.db")
	t.Setenv("DATABASE_PING_TIMEOUT", "250ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	auth := cfg.GetAuth()
	assert.Equal(t, "session", auth.GetContextKey())
	assert.Equal(t, "cookie:session", auth.GetTokenLookup())
	assert.Equal(t, 2, auth.GetTokenExpiration())

	assert.Equal(t, "9090", cfg.GetServer().GetPort())
	assert.Equal(t, "file:test.db", cfg.GetPersistence().GetDSN())
	assert.Equal(t, 250*time.Millisecond, cfg.GetPersistence().GetPingTimeout())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "super-secret")
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")
	t.Setenv("DATABASE_PING_TIMEOUT", "eventually")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.GetAuth().GetTokenExpiration())
	assert.Equal(t, 5*time.Second, cfg.GetPersistence().GetPingTimeout())
}
