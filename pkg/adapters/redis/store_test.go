package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/breadboard/pkg/adapters/redis"
	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := newTestStore(t)
	ports.RunCircuitStoreContract(t, store)
}

func buildWire(t *testing.T, name string) *domain.Circuit {
	t.Helper()
	gen := domain.NewSequentialGenerator()
	c := domain.NewCircuit(name, name)
	sw := domain.NewSwitch(gen, "A", domain.Point{})
	led := domain.NewLed(gen, "Q", domain.Point{})
	c.AddComponent(sw)
	c.AddComponent(led)
	_, err := c.Connect(gen, sw, sw.OutputPort(0), led, led.InputPort(0))
	require.NoError(t, err)
	return c
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, store := newTestStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.SaveCircuit(ctx, "wire", buildWire(t, "wire")))

	_, err := store.LoadCircuit("wire")
	assert.NoError(t, err, "circuit should load before the TTL elapses")

	// miniredis advances time manually instead of waiting.
	mr.FastForward(2 * time.Second)

	_, err = store.LoadCircuit("wire")
	assert.ErrorIs(t, err, domain.ErrCircuitNotFound)

	names, err := store.ListCircuits()
	assert.NoError(t, err)
	assert.NotContains(t, names, "wire", "expired circuit should leave the index on failed load")
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})

	alpha := redis.NewFromClient(client, redis.WithPrefix("alpha:"))
	beta := redis.NewFromClient(client, redis.WithPrefix("beta:"))
	ctx := context.Background()

	require.NoError(t, alpha.SaveCircuit(ctx, "wire", buildWire(t, "wire")))

	_, err = beta.LoadCircuit("wire")
	assert.ErrorIs(t, err, domain.ErrCircuitNotFound, "prefixes should not see each other's circuits")

	names, err := beta.ListCircuits()
	require.NoError(t, err)
	assert.Empty(t, names)
}
