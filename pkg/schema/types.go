package schema

import (
	"github.com/aretw0/breadboard/pkg/domain"
)

// Document is the persisted form of one circuit.
type Document struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string         `json:"name" yaml:"name"`
	Components []ComponentDef `json:"components,omitempty" yaml:"components,omitempty"`
	Connectors []ConnectorDef `json:"connectors,omitempty" yaml:"connectors,omitempty"`
}

// ComponentDef describes one component. Circuit is only set for
// sub-circuits and names the circuit the component wraps.
type ComponentDef struct {
	ID      string `json:"id" yaml:"id"`
	Kind    string `json:"kind" yaml:"kind"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	X       int    `json:"x,omitempty" yaml:"x,omitempty"`
	Y       int    `json:"y,omitempty" yaml:"y,omitempty"`
	State   bool   `json:"state,omitempty" yaml:"state,omitempty"`
	Circuit string `json:"circuit,omitempty" yaml:"circuit,omitempty"`
}

// Endpoint names one side of a connector: a component id plus the id of a
// port on that component (in0, in1, out0, ...).
type Endpoint struct {
	Component string `json:"component" yaml:"component"`
	Port      string `json:"port" yaml:"port"`
}

// ConnectorDef describes one wire from a source output to a sink input.
type ConnectorDef struct {
	ID   string   `json:"id" yaml:"id"`
	From Endpoint `json:"from" yaml:"from"`
	To   Endpoint `json:"to" yaml:"to"`
}

// FromCircuit flattens a live circuit into its persisted form. Signal values
// on ports and connectors are transient and are not captured; switch states
// are, so a saved circuit reopens with its inputs as the user left them.
func FromCircuit(c *domain.Circuit) *Document {
	if c == nil {
		return &Document{}
	}
	doc := &Document{ID: c.ID, Name: c.Name}
	for _, comp := range c.Components {
		def := ComponentDef{
			ID:    comp.ID,
			Kind:  string(comp.Kind),
			Name:  comp.Name,
			X:     comp.Position.X,
			Y:     comp.Position.Y,
			State: comp.State,
		}
		if comp.Kind == domain.KindSubCircuit && comp.Sub != nil {
			def.Circuit = comp.Sub.Ref
		}
		doc.Components = append(doc.Components, def)
	}
	for _, conn := range c.Connectors {
		def := ConnectorDef{
			ID:   conn.ID,
			From: Endpoint{Component: conn.SourceComponent},
			To:   Endpoint{Component: conn.SinkComponent},
		}
		if conn.SourcePort != nil {
			def.From.Port = conn.SourcePort.ID
		}
		if conn.SinkPort != nil {
			def.To.Port = conn.SinkPort.ID
		}
		doc.Connectors = append(doc.Connectors, def)
	}
	return doc
}
