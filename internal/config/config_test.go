package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("CHAT_ID", "-1001")
	t.Setenv("POOL_API_BASE_URL", "http://localhost:8080")
}

func TestNewDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, int64(-1001), cfg.TelegramBot.ChatID)
	assert.Equal(t, 10*time.Second, cfg.PoolAPI.Timeout)
	assert.True(t, cfg.Contention.AllowTies)
	assert.Equal(t, 24, cfg.Contention.MaxGames)
	assert.Equal(t, "America/Chicago", cfg.Schedule.Location)
	assert.Equal(t, ":80", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ComputeTimeout)

	opts := cfg.ContentionOptions()
	assert.True(t, opts.AllowTies)
	assert.Equal(t, 24, opts.MaxRemainingGames)
	assert.Equal(t, 1, opts.Workers)
}

func TestNewOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CONTENTION_ALLOW_TIES", "false")
	t.Setenv("CONTENTION_WORKERS", "4")
	t.Setenv("API_CORS_ALLOW_ORIGINS", "https://pool.example,https://admin.example")
	t.Setenv("POOL_API_TIMEOUT", "3s")

	cfg, err := New()
	require.NoError(t, err)

	assert.False(t, cfg.ContentionOptions().AllowTies)
	assert.Equal(t, 4, cfg.ContentionOptions().Workers)
	assert.Equal(t, []string{"https://pool.example", "https://admin.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.PoolAPI.Timeout)
}

func TestNewRejectsInvalidValues(t *testing.T) {
	t.Run("missing base url", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "token")
		t.Setenv("CHAT_ID", "1")
		t.Setenv("POOL_API_BASE_URL", "")
		require.NoError(t, os.Unsetenv("POOL_API_BASE_URL"))
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("bad cron", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CONTENDERS_CRON", "every sunday")
		_, err := New()
		assert.ErrorContains(t, err, "CONTENDERS_CRON")
	})

	t.Run("game limit out of range", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CONTENTION_MAX_GAMES", "64")
		_, err := New()
		assert.ErrorContains(t, err, "CONTENTION_MAX_GAMES")
	})

	t.Run("zero compute timeout", func(t *testing.T) {
		setRequired(t)
		t.Setenv("HTTP_COMPUTE_TIMEOUT", "0s")
		_, err := New()
		assert.ErrorContains(t, err, "HTTP_COMPUTE_TIMEOUT")
	})
}
