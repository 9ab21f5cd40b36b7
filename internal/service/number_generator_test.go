package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestRandomNumberGeneratorRangeAndSeed(t *testing.T) {
	ctx := context.Background()
	a := NewRandomNumberGenerator(7)
	b := NewRandomNumberGenerator(7)
	for i := 0; i < 1000; i++ {
		x, err := a.Next(ctx)
		require.NoError(t, err)
		y, err := b.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, x, y, "same seed must yield the same sequence")
		assert.GreaterOrEqual(t, x, 0)
		assert.Less(t, x, domain.TicketNumberLimit)
	}
}

func TestRedisSequenceGenerator(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	gen := NewRedisSequenceGenerator(client, "seq")
	for want := 0; want < 3; want++ {
		got, err := gen.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	require.NoError(t, srv.Set("seq", "9998"))
	got, err := gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9998, got)
	got, err = gen.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got, "sequence wraps at the number limit")

	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = unreachable.Close() })
	_, err = NewRedisSequenceGenerator(unreachable, "seq").Next(ctx)
	assert.Error(t, err)
}
