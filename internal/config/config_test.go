package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("TICKET_NUMBER_STRATEGY", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, NumberStrategyRandom, cfg.Tickets.NumberStrategy)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("TICKET_NUMBER_STRATEGY", "Sequence")
	t.Setenv("TICKET_NUMBER_SEED", "42")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.Equal(t, NumberStrategySequence, cfg.Tickets.NumberStrategy)
	assert.EqualValues(t, 42, cfg.Tickets.NumberSeed)
	assert.EqualValues(t, 10, cfg.Postgres.MaxConns)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown strategy", func(t *testing.T) {
		t.Setenv("TICKET_NUMBER_STRATEGY", "uuid")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("sequence without redis", func(t *testing.T) {
		t.Setenv("TICKET_NUMBER_STRATEGY", NumberStrategySequence)
		t.Setenv("REDIS_ADDR", "")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("bad redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "x")
		_, err := Load()
		assert.Error(t, err)
	})
}
