package loam

import (
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/breadboard/pkg/schema"
)

// CircuitMetadata is the frontmatter of a circuit document. It uses
// "mapstructure" tags to match the YAML keys Loam hands back, and mirrors
// schema.Document field for field.
type CircuitMetadata struct {
	ID         string          `json:"id" mapstructure:"id"`
	Name       string          `json:"name" mapstructure:"name"`
	Components []ComponentMeta `json:"components" mapstructure:"components"`
	Connectors []ConnectorMeta `json:"connectors" mapstructure:"connectors"`
}

type ComponentMeta struct {
	ID      string `json:"id" mapstructure:"id"`
	Kind    string `json:"kind" mapstructure:"kind"`
	Name    string `json:"name" mapstructure:"name"`
	X       int    `json:"x" mapstructure:"x"`
	Y       int    `json:"y" mapstructure:"y"`
	State   bool   `json:"state" mapstructure:"state"`
	Circuit string `json:"circuit" mapstructure:"circuit"`
}

type EndpointMeta struct {
	Component string `json:"component" mapstructure:"component"`
	Port      string `json:"port" mapstructure:"port"`
}

// ConnectorMeta keeps endpoints loosely typed: hand-authored frontmatter may
// write an endpoint as the shorthand string "component.port" instead of the
// full inline map.
type ConnectorMeta struct {
	ID   string `json:"id" mapstructure:"id"`
	From any    `json:"from" mapstructure:"from"`
	To   any    `json:"to" mapstructure:"to"`
}

// decodeEndpoint accepts both endpoint spellings. Unrecognized shapes decode
// to a zero endpoint, which the circuit codec then drops as dangling.
func decodeEndpoint(v any) schema.Endpoint {
	switch ep := v.(type) {
	case string:
		// Shorthand "component.port". The port id carries no dots; the
		// component id may, so split on the last one.
		idx := strings.LastIndex(ep, ".")
		if idx <= 0 || idx == len(ep)-1 {
			return schema.Endpoint{}
		}
		return schema.Endpoint{Component: ep[:idx], Port: ep[idx+1:]}
	case map[string]any, map[any]any:
		var meta EndpointMeta
		if err := mapstructure.Decode(ep, &meta); err != nil {
			return schema.Endpoint{}
		}
		return schema.Endpoint{Component: meta.Component, Port: meta.Port}
	case EndpointMeta:
		return schema.Endpoint{Component: ep.Component, Port: ep.Port}
	default:
		return schema.Endpoint{}
	}
}

func (m CircuitMetadata) toDocument(fallbackName string) *schema.Document {
	doc := &schema.Document{ID: m.ID, Name: m.Name}
	if doc.Name == "" {
		doc.Name = fallbackName
	}
	for _, c := range m.Components {
		doc.Components = append(doc.Components, schema.ComponentDef{
			ID:      c.ID,
			Kind:    c.Kind,
			Name:    c.Name,
			X:       c.X,
			Y:       c.Y,
			State:   c.State,
			Circuit: c.Circuit,
		})
	}
	for _, c := range m.Connectors {
		doc.Connectors = append(doc.Connectors, schema.ConnectorDef{
			ID:   c.ID,
			From: decodeEndpoint(c.From),
			To:   decodeEndpoint(c.To),
		})
	}
	return doc
}
