package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// NumberGenerator draws display numbers in [0, domain.TicketNumberLimit).
// Numbers are not guaranteed unique.
type NumberGenerator interface {
	Next(ctx context.Context) (int, error)
}

// RandomNumberGenerator draws numbers from a seedable pseudo-random source.
type RandomNumberGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomNumberGenerator seeds the generator. A zero seed picks one from the clock.
func NewRandomNumberGenerator(seed int64) *RandomNumberGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomNumberGenerator{rnd: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))}
}

func (g *RandomNumberGenerator) Next(context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(domain.TicketNumberLimit), nil
}

type incrementer interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RedisSequenceGenerator hands out increasing numbers from a shared Redis
// counter, wrapping around at domain.TicketNumberLimit.
type RedisSequenceGenerator struct {
	client incrementer
	key    string
}

// NewRedisSequenceGenerator uses key as the counter.
func NewRedisSequenceGenerator(client incrementer, key string) *RedisSequenceGenerator {
	return &RedisSequenceGenerator{client: client, key: key}
}

func (g *RedisSequenceGenerator) Next(ctx context.Context) (int, error) {
	n, err := g.client.Incr(ctx, g.key).Result()
	if err != nil {
		return 0, err
	}
	return int((n - 1) % domain.TicketNumberLimit), nil
}
