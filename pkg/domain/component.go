package domain

import "fmt"

// Kind is the closed set of component variants. Execute dispatches on it in
// a single switch, so adding a kind is a compile-visible change rather than
// a hunt for scattered type checks.
type Kind string

const (
	KindAnd        Kind = "and"
	KindOr         Kind = "or"
	KindNot        Kind = "not"
	KindSwitch     Kind = "switch"
	KindLed        Kind = "led"
	KindSubCircuit Kind = "subcircuit"
)

// Component is a unit of circuit behavior: a gate, a switch, an led, or a
// nested sub-circuit. It owns its ports exclusively; port order is
// significant (it fixes truth-table columns and wiring conventions).
type Component struct {
	ID       string
	Name     string
	Kind     Kind
	Position Point

	Inputs  []*Port
	Outputs []*Port

	// State is the latched value of a switch. Only meaningful for KindSwitch.
	State bool
	// Lit mirrors the input signal of an led. Only meaningful for KindLed.
	Lit bool

	// Sub holds the lazy-loaded body of a sub-circuit. Only set for
	// KindSubCircuit.
	Sub *SubCircuit
}

// New creates a component of the given kind with its ports synthesized.
// Sub-circuits are created through NewSubCircuit instead, because they need
// a body reference.
func New(kind Kind, id, name string, pos Point) (*Component, error) {
	c := &Component{ID: id, Name: name, Kind: kind, Position: pos}
	switch kind {
	case KindAnd, KindOr:
		c.Inputs = []*Port{NewPort("in0", DirectionInput), NewPort("in1", DirectionInput)}
		c.Outputs = []*Port{NewPort("out0", DirectionOutput)}
	case KindNot:
		c.Inputs = []*Port{NewPort("in0", DirectionInput)}
		c.Outputs = []*Port{NewPort("out0", DirectionOutput)}
	case KindSwitch:
		c.Outputs = []*Port{NewPort("out0", DirectionOutput)}
	case KindLed:
		c.Inputs = []*Port{NewPort("in0", DirectionInput)}
	case KindSubCircuit:
		return nil, fmt.Errorf("use NewSubCircuit for kind %q", kind)
	default:
		return nil, fmt.Errorf("unknown component kind %q", kind)
	}
	return c, nil
}

// NewAnd creates an AND gate.
func NewAnd(gen IDGenerator, name string, pos Point) *Component {
	c, _ := New(KindAnd, gen.NextID("and"), name, pos)
	return c
}

// NewOr creates an OR gate.
func NewOr(gen IDGenerator, name string, pos Point) *Component {
	c, _ := New(KindOr, gen.NextID("or"), name, pos)
	return c
}

// NewNot creates a NOT gate.
func NewNot(gen IDGenerator, name string, pos Point) *Component {
	c, _ := New(KindNot, gen.NextID("not"), name, pos)
	return c
}

// NewSwitch creates an input switch, off.
func NewSwitch(gen IDGenerator, name string, pos Point) *Component {
	c, _ := New(KindSwitch, gen.NextID("switch"), name, pos)
	return c
}

// NewLed creates an led indicator.
func NewLed(gen IDGenerator, name string, pos Point) *Component {
	c, _ := New(KindLed, gen.NextID("led"), name, pos)
	return c
}

// Execute recomputes this component's outputs from its current input port
// values. It writes only the component's own ports (plus the State/Lit
// mirrors) and is idempotent for unchanged inputs.
func (c *Component) Execute() {
	switch c.Kind {
	case KindAnd:
		c.Outputs[0].Value = c.Inputs[0].Value && c.Inputs[1].Value
	case KindOr:
		c.Outputs[0].Value = c.Inputs[0].Value || c.Inputs[1].Value
	case KindNot:
		c.Outputs[0].Value = !c.Inputs[0].Value
	case KindSwitch:
		c.Outputs[0].Value = c.State
	case KindLed:
		c.Lit = c.Inputs[0].Value
	case KindSubCircuit:
		if c.Sub != nil {
			c.Sub.execute(c)
		}
	}
}

// SetState latches a switch value and executes immediately so the output
// port is live. No-op for other kinds.
func (c *Component) SetState(v bool) {
	if c.Kind != KindSwitch {
		return
	}
	c.State = v
	c.Execute()
}

// Toggle flips a switch and executes immediately.
func (c *Component) Toggle() {
	c.SetState(!c.State)
}

// IsLit reports whether an led currently shows a high signal.
func (c *Component) IsLit() bool {
	return c.Lit
}

// InputPort returns the i-th input port, or nil if out of range.
func (c *Component) InputPort(i int) *Port {
	if i < 0 || i >= len(c.Inputs) {
		return nil
	}
	return c.Inputs[i]
}

// OutputPort returns the i-th output port, or nil if out of range.
func (c *Component) OutputPort(i int) *Port {
	if i < 0 || i >= len(c.Outputs) {
		return nil
	}
	return c.Outputs[i]
}

// PortByID finds a port across inputs and outputs.
func (c *Component) PortByID(id string) *Port {
	for _, p := range c.Inputs {
		if p.ID == id {
			return p
		}
	}
	for _, p := range c.Outputs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// InputCount returns the number of input ports. For an unloaded sub-circuit
// this triggers a load attempt first.
func (c *Component) InputCount() int {
	if c.Kind == KindSubCircuit && c.Sub != nil {
		c.Sub.ensureLoaded(c)
	}
	return len(c.Inputs)
}

// OutputCount returns the number of output ports, loading a sub-circuit
// body first if needed.
func (c *Component) OutputCount() int {
	if c.Kind == KindSubCircuit && c.Sub != nil {
		c.Sub.ensureLoaded(c)
	}
	return len(c.Outputs)
}
