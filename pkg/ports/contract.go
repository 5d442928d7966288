package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/breadboard/pkg/domain"
)

// RunCircuitStoreContract verifies that a CircuitStore implementation adheres
// to the interface contract, most importantly fresh-graph isolation between
// loads. Adapters call it from their own tests with a ready store.
func RunCircuitStoreContract(t *testing.T, store CircuitStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	build := func() *domain.Circuit {
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

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.SaveCircuit(ctx, name, build()))

		loaded, err := store.LoadCircuit(name)
		require.NoError(t, err)
		assert.Equal(t, name, loaded.Name)
		assert.Len(t, loaded.Components, 2)
		assert.Len(t, loaded.Connectors, 1)
	})

	t.Run("Loads Are Isolated", func(t *testing.T) {
		require.NoError(t, store.SaveCircuit(ctx, name, build()))

		first, err := store.LoadCircuit(name)
		require.NoError(t, err)
		second, err := store.LoadCircuit(name)
		require.NoError(t, err)

		first.Switches()[0].SetState(true)
		first.Step()
		assert.False(t, second.Leds()[0].IsLit(),
			"two loads of the same circuit must not share state")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadCircuit("non-existent-" + name)
		assert.ErrorIs(t, err, domain.ErrCircuitNotFound)
	})

	t.Run("List", func(t *testing.T) {
		name1 := name + "-1"
		name2 := name + "-2"
		require.NoError(t, store.SaveCircuit(ctx, name1, build()))
		require.NoError(t, store.SaveCircuit(ctx, name2, build()))
		defer func() {
			_ = store.DeleteCircuit(ctx, name1)
			_ = store.DeleteCircuit(ctx, name2)
		}()

		names, err := store.ListCircuits()
		require.NoError(t, err)
		assert.Contains(t, names, name1)
		assert.Contains(t, names, name2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.SaveCircuit(ctx, name, build()))
		require.NoError(t, store.DeleteCircuit(ctx, name))

		_, err := store.LoadCircuit(name)
		assert.ErrorIs(t, err, domain.ErrCircuitNotFound,
			"Load after Delete should return ErrCircuitNotFound")

		err = store.DeleteCircuit(ctx, name)
		assert.ErrorIs(t, err, domain.ErrCircuitNotFound)
	})
}
