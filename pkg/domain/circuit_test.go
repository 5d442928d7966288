package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/breadboard/pkg/domain"
)

func TestAddComponentDeduplicates(t *testing.T) {
	gen := domain.NewSequentialGenerator()
	c := domain.NewCircuit(gen.NextID("circuit"), "test")
	sw := domain.NewSwitch(gen, "A", domain.Point{})

	c.AddComponent(sw)
	c.AddComponent(sw)
	c.AddComponent(nil)

	if len(c.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(c.Components))
	}
}

func TestConnectValidation(t *testing.T) {
	gen := domain.NewSequentialGenerator()
	c := domain.NewCircuit(gen.NextID("circuit"), "test")
	sw := domain.NewSwitch(gen, "A", domain.Point{})
	led := domain.NewLed(gen, "Q", domain.Point{})
	c.AddComponent(sw)
	c.AddComponent(led)

	t.Run("nil endpoint", func(t *testing.T) {
		_, err := c.Connect(gen, sw, nil, led, led.InputPort(0))
		if !errors.Is(err, domain.ErrNilEndpoint) {
			t.Errorf("expected ErrNilEndpoint, got %v", err)
		}
	})

	t.Run("direction mismatch", func(t *testing.T) {
		_, err := c.Connect(gen, led, led.InputPort(0), sw, sw.OutputPort(0))
		if !errors.Is(err, domain.ErrPortDirection) {
			t.Errorf("expected ErrPortDirection, got %v", err)
		}
	})

	t.Run("foreign component", func(t *testing.T) {
		stray := domain.NewSwitch(gen, "B", domain.Point{})
		_, err := c.Connect(gen, stray, stray.OutputPort(0), led, led.InputPort(0))
		if !errors.Is(err, domain.ErrNotInCircuit) {
			t.Errorf("expected ErrNotInCircuit, got %v", err)
		}
	})

	t.Run("duplicate returns existing", func(t *testing.T) {
		first, err := c.Connect(gen, sw, sw.OutputPort(0), led, led.InputPort(0))
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
		second, err := c.Connect(gen, sw, sw.OutputPort(0), led, led.InputPort(0))
		if err != nil {
			t.Fatalf("second Connect failed: %v", err)
		}
		if first != second {
			t.Error("duplicate connection should return the existing connector")
		}
		if len(c.Connectors) != 1 {
			t.Errorf("expected 1 connector, got %d", len(c.Connectors))
		}
	})
}

func TestRemoveComponentCascades(t *testing.T) {
	gen := domain.NewSequentialGenerator()
	c := domain.NewCircuit(gen.NextID("circuit"), "test")
	a := domain.NewSwitch(gen, "A", domain.Point{})
	b := domain.NewSwitch(gen, "B", domain.Point{})
	gate := domain.NewAnd(gen, "and", domain.Point{})
	led := domain.NewLed(gen, "Q", domain.Point{})
	for _, comp := range []*domain.Component{a, b, gate, led} {
		c.AddComponent(comp)
	}
	mustConnect(t, c, gen, a, gate, 0)
	mustConnect(t, c, gen, b, gate, 1)
	if _, err := c.Connect(gen, gate, gate.OutputPort(0), led, led.InputPort(0)); err != nil {
		t.Fatal(err)
	}

	c.RemoveComponent(gate)

	if got := len(c.Connectors); got != 0 {
		t.Errorf("expected all connectors removed with the gate, %d left", got)
	}
	if c.ComponentByID(gate.ID) != nil {
		t.Error("gate still present after removal")
	}
	if c.ComponentByID(a.ID) == nil || c.ComponentByID(led.ID) == nil {
		t.Error("unrelated components were removed")
	}
}

func TestStepPropagatesThroughChain(t *testing.T) {
	gen := domain.NewSequentialGenerator()
	c := domain.NewCircuit(gen.NextID("circuit"), "chain")
	sw := domain.NewSwitch(gen, "A", domain.Point{})
	inv1 := domain.NewNot(gen, "n1", domain.Point{})
	inv2 := domain.NewNot(gen, "n2", domain.Point{})
	led := domain.NewLed(gen, "Q", domain.Point{})
	for _, comp := range []*domain.Component{sw, inv1, inv2, led} {
		c.AddComponent(comp)
	}
	mustConnect(t, c, gen, sw, inv1, 0)
	mustConnect(t, c, gen, inv1, inv2, 0)
	if _, err := c.Connect(gen, inv2, inv2.OutputPort(0), led, led.InputPort(0)); err != nil {
		t.Fatal(err)
	}

	sw.SetState(true)
	// Double inversion: the led should come back to the switch value once
	// the signal has crossed both inverters.
	for i := 0; i < 3; i++ {
		c.Step()
	}
	if !led.IsLit() {
		t.Error("signal did not settle through the inverter chain")
	}
}

func TestClearSignals(t *testing.T) {
	gen := domain.NewSequentialGenerator()
	c := domain.NewCircuit(gen.NextID("circuit"), "test")
	sw := domain.NewSwitch(gen, "A", domain.Point{})
	led := domain.NewLed(gen, "Q", domain.Point{})
	c.AddComponent(sw)
	c.AddComponent(led)
	conn, err := c.Connect(gen, sw, sw.OutputPort(0), led, led.InputPort(0))
	if err != nil {
		t.Fatal(err)
	}

	sw.SetState(true)
	c.Step()
	c.ClearSignals()

	if sw.State || sw.OutputPort(0).Value || led.InputPort(0).Value || conn.Value {
		t.Error("ClearSignals left a high signal behind")
	}
}

// mustConnect wires source output 0 to the given input index of sink.
func mustConnect(t *testing.T, c *domain.Circuit, gen domain.IDGenerator, source, sink *domain.Component, input int) *domain.Connector {
	t.Helper()
	conn, err := c.Connect(gen, source, source.OutputPort(0), sink, sink.InputPort(input))
	if err != nil {
		t.Fatalf("Connect %s -> %s: %v", source.ID, sink.ID, err)
	}
	return conn
}
