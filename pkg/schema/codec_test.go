package schema_test

import (
	"testing"

	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/schema"
)

func andCircuit(t *testing.T) *domain.Circuit {
	t.Helper()
	gen := domain.NewSequentialGenerator()
	c := domain.NewCircuit("and2", "and2")
	a := domain.NewSwitch(gen, "A", domain.Point{X: 10, Y: 20})
	b := domain.NewSwitch(gen, "B", domain.Point{X: 10, Y: 60})
	gate := domain.NewAnd(gen, "and", domain.Point{X: 80, Y: 40})
	q := domain.NewLed(gen, "Q", domain.Point{X: 150, Y: 40})
	for _, comp := range []*domain.Component{a, b, gate, q} {
		c.AddComponent(comp)
	}
	for _, w := range []struct {
		src, snk *domain.Component
		input    int
	}{{a, gate, 0}, {b, gate, 1}, {gate, q, 0}} {
		if _, err := c.Connect(gen, w.src, w.src.OutputPort(0), w.snk, w.snk.InputPort(w.input)); err != nil {
			t.Fatalf("Connect: %v", err)
		}
	}
	a.SetState(true)
	return c
}

func TestRoundTripJSON(t *testing.T) {
	original := andCircuit(t)

	data, err := schema.Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	restored, err := schema.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if restored.ID != original.ID || restored.Name != original.Name {
		t.Errorf("identity changed: %s/%s", restored.ID, restored.Name)
	}
	if len(restored.Components) != 4 || len(restored.Connectors) != 3 {
		t.Fatalf("shape changed: %d components, %d connectors",
			len(restored.Components), len(restored.Connectors))
	}

	sw := restored.Switches()[0]
	if !sw.State {
		t.Error("latched switch state lost in round trip")
	}
	if sw.Position.X != 10 || sw.Position.Y != 20 {
		t.Errorf("position lost: %+v", sw.Position)
	}

	// The rebuilt graph must behave, not just look, the same.
	restored.Switches()[1].SetState(true)
	restored.Step()
	if !restored.Leds()[0].IsLit() {
		t.Error("restored circuit does not compute AND")
	}
}

func TestRoundTripYAML(t *testing.T) {
	original := andCircuit(t)

	data, err := schema.EncodeYAML(original)
	if err != nil {
		t.Fatalf("EncodeYAML: %v", err)
	}
	restored, err := schema.DecodeYAML(data)
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if len(restored.Components) != 4 || len(restored.Connectors) != 3 {
		t.Fatalf("shape changed: %d components, %d connectors",
			len(restored.Components), len(restored.Connectors))
	}
}

func TestDecodeIsFreshGraph(t *testing.T) {
	data, err := schema.Encode(andCircuit(t))
	if err != nil {
		t.Fatal(err)
	}

	first, err := schema.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	second, err := schema.Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	first.Switches()[1].SetState(true)
	first.Step()
	if second.Leds()[0].IsLit() {
		t.Error("two decodes of the same document share state")
	}
}

type loaderFunc func(name string) (*domain.Circuit, error)

func (f loaderFunc) LoadCircuit(name string) (*domain.Circuit, error) { return f(name) }

func TestDecodeWiresSubCircuitLoader(t *testing.T) {
	doc := &schema.Document{
		Name: "outer",
		Components: []schema.ComponentDef{
			{ID: "switch-1", Kind: "switch", Name: "A"},
			{ID: "sub-1", Kind: "subcircuit", Name: "Inv", Circuit: "inverter"},
			{ID: "led-1", Kind: "led", Name: "Q"},
		},
		Connectors: []schema.ConnectorDef{
			{ID: "conn-1", From: schema.Endpoint{Component: "switch-1", Port: "out0"}, To: schema.Endpoint{Component: "sub-1", Port: "in0"}},
			{ID: "conn-2", From: schema.Endpoint{Component: "sub-1", Port: "out0"}, To: schema.Endpoint{Component: "led-1", Port: "in0"}},
		},
	}

	loader := loaderFunc(func(name string) (*domain.Circuit, error) {
		if name != "inverter" {
			t.Fatalf("unexpected load of %q", name)
		}
		gen := domain.NewSequentialGenerator()
		body := domain.NewCircuit("inverter", "inverter")
		in := domain.NewSwitch(gen, "in", domain.Point{})
		inv := domain.NewNot(gen, "inv", domain.Point{})
		out := domain.NewLed(gen, "out", domain.Point{})
		body.AddComponent(in)
		body.AddComponent(inv)
		body.AddComponent(out)
		if _, err := body.Connect(gen, in, in.OutputPort(0), inv, inv.InputPort(0)); err != nil {
			t.Fatal(err)
		}
		if _, err := body.Connect(gen, inv, inv.OutputPort(0), out, out.InputPort(0)); err != nil {
			t.Fatal(err)
		}
		return body, nil
	})

	circuit, err := doc.Circuit(schema.WithLoader(loader))
	if err != nil {
		t.Fatalf("Circuit: %v", err)
	}
	if len(circuit.Connectors) != 2 {
		t.Fatalf("sub-circuit connectors dropped: %d survived", len(circuit.Connectors))
	}

	// Switch low through an inverter lights the led.
	for i := 0; i < 5; i++ {
		circuit.Step()
	}
	circuit.Leds()[0].Execute()
	if !circuit.Leds()[0].IsLit() {
		t.Error("inverted low input should light the led")
	}
}

func TestDecodeDropsMalformedEntries(t *testing.T) {
	doc := &schema.Document{
		Name: "broken",
		Components: []schema.ComponentDef{
			{ID: "switch-1", Kind: "switch", Name: "A"},
			{ID: "mystery-1", Kind: "flux-capacitor"},
			{ID: "led-1", Kind: "led", Name: "Q"},
		},
		Connectors: []schema.ConnectorDef{
			{ID: "conn-1", From: schema.Endpoint{Component: "switch-1", Port: "out0"}, To: schema.Endpoint{Component: "led-1", Port: "in0"}},
			{ID: "conn-2", From: schema.Endpoint{Component: "ghost", Port: "out0"}, To: schema.Endpoint{Component: "led-1", Port: "in0"}},
			{ID: "conn-3", From: schema.Endpoint{Component: "switch-1", Port: "out9"}, To: schema.Endpoint{Component: "led-1", Port: "in0"}},
			{ID: "conn-4", From: schema.Endpoint{Component: "led-1", Port: "in0"}, To: schema.Endpoint{Component: "switch-1", Port: "out0"}},
		},
	}

	circuit, err := doc.Circuit()
	if err != nil {
		t.Fatalf("Circuit: %v", err)
	}
	if len(circuit.Components) != 2 {
		t.Errorf("expected unknown kind skipped, got %d components", len(circuit.Components))
	}
	if len(circuit.Connectors) != 1 {
		t.Errorf("expected only the valid connector kept, got %d", len(circuit.Connectors))
	}
	if circuit.Connectors[0].ID != "conn-1" {
		t.Errorf("wrong connector survived: %s", circuit.Connectors[0].ID)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := schema.Decode([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := schema.DecodeYAML([]byte("\t{broken")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
