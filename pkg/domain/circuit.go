package domain

import "fmt"

// Circuit is an owned graph of components and connectors. Collections keep
// insertion order; lookups are linear scans, which is fine at the scale of
// hand-built circuits.
type Circuit struct {
	ID   string
	Name string

	Components []*Component
	Connectors []*Connector
}

// NewCircuit creates an empty circuit.
func NewCircuit(id, name string) *Circuit {
	return &Circuit{ID: id, Name: name}
}

// AddComponent appends a component. Nil components and components already
// present (by identity) are ignored.
func (c *Circuit) AddComponent(comp *Component) {
	if comp == nil {
		return
	}
	for _, existing := range c.Components {
		if existing == comp {
			return
		}
	}
	c.Components = append(c.Components, comp)
}

// RemoveComponent removes a component and every connector that references it
// as source or sink, keeping the no-dangling-connector invariant.
func (c *Circuit) RemoveComponent(comp *Component) {
	if comp == nil {
		return
	}
	kept := c.Components[:0]
	for _, existing := range c.Components {
		if existing != comp {
			kept = append(kept, existing)
		}
	}
	c.Components = kept

	wires := c.Connectors[:0]
	for _, conn := range c.Connectors {
		if conn.SourceComponent != comp.ID && conn.SinkComponent != comp.ID {
			wires = append(wires, conn)
		}
	}
	c.Connectors = wires
}

// AddConnector appends a connector with the same nil/duplicate rules as
// AddComponent.
func (c *Circuit) AddConnector(conn *Connector) {
	if conn == nil {
		return
	}
	for _, existing := range c.Connectors {
		if existing == conn {
			return
		}
	}
	c.Connectors = append(c.Connectors, conn)
}

// RemoveConnector removes a connector.
func (c *Circuit) RemoveConnector(conn *Connector) {
	kept := c.Connectors[:0]
	for _, existing := range c.Connectors {
		if existing != conn {
			kept = append(kept, existing)
		}
	}
	c.Connectors = kept
}

// ComponentByID finds a component by id, or nil.
func (c *Circuit) ComponentByID(id string) *Component {
	for _, comp := range c.Components {
		if comp.ID == id {
			return comp
		}
	}
	return nil
}

// ConnectorByID finds a connector by id, or nil.
func (c *Circuit) ConnectorByID(id string) *Connector {
	for _, conn := range c.Connectors {
		if conn.ID == id {
			return conn
		}
	}
	return nil
}

// Connect wires an output port of source to an input port of sink. It fails
// fast on nil endpoints, wrong port directions, or components that are not
// members of this circuit. Connecting an already-wired pair returns the
// existing connector. Fan-out from one source port is allowed; feeding one
// sink port from several connectors is not prevented here (schema.Validate
// flags it).
func (c *Circuit) Connect(gen IDGenerator, source *Component, sourcePort *Port, sink *Component, sinkPort *Port) (*Connector, error) {
	if source == nil || sink == nil || sourcePort == nil || sinkPort == nil {
		return nil, ErrNilEndpoint
	}
	if sourcePort.Direction != DirectionOutput {
		return nil, fmt.Errorf("%w: source %s/%s is not an output", ErrPortDirection, source.ID, sourcePort.ID)
	}
	if sinkPort.Direction != DirectionInput {
		return nil, fmt.Errorf("%w: sink %s/%s is not an input", ErrPortDirection, sink.ID, sinkPort.ID)
	}
	if c.ComponentByID(source.ID) != source {
		return nil, fmt.Errorf("%w: %s", ErrNotInCircuit, source.ID)
	}
	if c.ComponentByID(sink.ID) != sink {
		return nil, fmt.Errorf("%w: %s", ErrNotInCircuit, sink.ID)
	}

	for _, existing := range c.Connectors {
		if existing.SourcePort == sourcePort && existing.SinkPort == sinkPort {
			return existing, nil
		}
	}

	conn := &Connector{
		ID:              gen.NextID("conn"),
		SourceComponent: source.ID,
		SinkComponent:   sink.ID,
		SourcePort:      sourcePort,
		SinkPort:        sinkPort,
	}
	c.AddConnector(conn)
	return conn, nil
}

// Disconnect removes a connector from the circuit.
func (c *Circuit) Disconnect(conn *Connector) {
	c.RemoveConnector(conn)
}

// Step runs one evaluation cycle: execute every component, propagate every
// connector, then execute every component again so gates see the freshly
// propagated inputs. One call settles roughly one level of cascaded logic;
// multi-level circuits need repeated calls, and a combinational feedback
// loop never converges (each call still terminates).
func (c *Circuit) Step() {
	for _, comp := range c.Components {
		comp.Execute()
	}
	for _, conn := range c.Connectors {
		conn.Propagate()
	}
	for _, comp := range c.Components {
		comp.Execute()
	}
}

// ClearSignals forces every switch state, every port value and every cached
// connector value to false. It does not execute anything afterwards; see
// sim.Context.Reset for the full quiescent reset.
func (c *Circuit) ClearSignals() {
	for _, comp := range c.Components {
		if comp.Kind == KindSwitch {
			comp.State = false
		}
		for _, p := range comp.Inputs {
			p.Value = false
		}
		for _, p := range comp.Outputs {
			p.Value = false
		}
	}
	for _, conn := range c.Connectors {
		conn.Value = false
	}
}

// Switches returns the input switches in discovery order. This order fixes
// truth-table columns and sub-circuit port numbering.
func (c *Circuit) Switches() []*Component {
	var out []*Component
	for _, comp := range c.Components {
		if comp.Kind == KindSwitch {
			out = append(out, comp)
		}
	}
	return out
}

// Leds returns the led outputs in discovery order.
func (c *Circuit) Leds() []*Component {
	var out []*Component
	for _, comp := range c.Components {
		if comp.Kind == KindLed {
			out = append(out, comp)
		}
	}
	return out
}
