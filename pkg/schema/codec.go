package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/breadboard/pkg/domain"
)

// DecodeOption configures circuit reconstruction.
type DecodeOption func(*decoder)

type decoder struct {
	loader domain.CircuitLoader
	logger *slog.Logger
}

// WithLoader attaches a loader to every sub-circuit component rebuilt from
// the document, enabling lazy loading of their bodies.
func WithLoader(loader domain.CircuitLoader) DecodeOption {
	return func(d *decoder) {
		d.loader = loader
	}
}

// WithLogger routes normalization warnings. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) DecodeOption {
	return func(d *decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Encode renders a circuit as JSON.
func Encode(c *domain.Circuit) ([]byte, error) {
	return json.Marshal(FromCircuit(c))
}

// EncodeYAML renders a circuit as YAML.
func EncodeYAML(c *domain.Circuit) ([]byte, error) {
	return yaml.Marshal(FromCircuit(c))
}

// Decode parses a JSON document and rebuilds the circuit.
func Decode(data []byte, opts ...DecodeOption) (*domain.Circuit, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode circuit: %w", err)
	}
	return doc.Circuit(opts...)
}

// DecodeYAML parses a YAML document and rebuilds the circuit.
func DecodeYAML(data []byte, opts ...DecodeOption) (*domain.Circuit, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode circuit: %w", err)
	}
	return doc.Circuit(opts...)
}

// Circuit rebuilds the live object graph from the document. The result is
// always a fresh graph; documents normalized here never share state with any
// previously decoded circuit.
//
// Malformed entries degrade rather than fail: a component of unknown kind is
// skipped, and a connector referencing a missing component or port, or wired
// against port direction, is dropped. Each is logged at warn level. Only a
// syntactically broken document is an error, reported by Decode/DecodeYAML.
func (doc *Document) Circuit(opts ...DecodeOption) (*domain.Circuit, error) {
	d := &decoder{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}

	id := doc.ID
	if id == "" {
		id = doc.Name
	}
	circuit := domain.NewCircuit(id, doc.Name)

	for _, def := range doc.Components {
		comp, err := d.buildComponent(def)
		if err != nil {
			d.logger.Warn("skipping component", "id", def.ID, "kind", def.Kind, "error", err)
			continue
		}
		circuit.AddComponent(comp)
	}

	for _, def := range doc.Connectors {
		conn, err := resolveConnector(circuit, def)
		if err != nil {
			d.logger.Warn("dropping connector", "id", def.ID, "error", err)
			continue
		}
		circuit.AddConnector(conn)
	}

	return circuit, nil
}

func (d *decoder) buildComponent(def ComponentDef) (*domain.Component, error) {
	pos := domain.Point{X: def.X, Y: def.Y}
	kind := domain.Kind(def.Kind)

	if kind == domain.KindSubCircuit {
		comp := domain.NewSubCircuit(literalID(def.ID), def.Name, def.Circuit, d.loader, pos)
		return comp, nil
	}

	comp, err := domain.New(kind, def.ID, def.Name, pos)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindSwitch && def.State {
		comp.SetState(true)
	}
	return comp, nil
}

func resolveConnector(circuit *domain.Circuit, def ConnectorDef) (*domain.Connector, error) {
	source := circuit.ComponentByID(def.From.Component)
	if source == nil {
		return nil, fmt.Errorf("source %q: %w", def.From.Component, domain.ErrNotInCircuit)
	}
	sink := circuit.ComponentByID(def.To.Component)
	if sink == nil {
		return nil, fmt.Errorf("sink %q: %w", def.To.Component, domain.ErrNotInCircuit)
	}
	// Sub-circuit ports are synthesized on first load. Touching the counts
	// forces the load so the lookups below can see them.
	if source.Kind == domain.KindSubCircuit {
		_ = source.OutputCount()
	}
	if sink.Kind == domain.KindSubCircuit {
		_ = sink.InputCount()
	}
	sourcePort := source.PortByID(def.From.Port)
	if sourcePort == nil {
		return nil, fmt.Errorf("source port %q on %q: %w", def.From.Port, source.ID, domain.ErrNilEndpoint)
	}
	sinkPort := sink.PortByID(def.To.Port)
	if sinkPort == nil {
		return nil, fmt.Errorf("sink port %q on %q: %w", def.To.Port, sink.ID, domain.ErrNilEndpoint)
	}
	if sourcePort.Direction != domain.DirectionOutput || sinkPort.Direction != domain.DirectionInput {
		return nil, fmt.Errorf("%q -> %q: %w", def.From.Port, def.To.Port, domain.ErrPortDirection)
	}
	return &domain.Connector{
		ID:              def.ID,
		SourceComponent: source.ID,
		SinkComponent:   sink.ID,
		SourcePort:      sourcePort,
		SinkPort:        sinkPort,
	}, nil
}

// literalID is an IDGenerator that hands back a fixed id once, for rebuilding
// components whose ids are already assigned.
type literalID string

func (id literalID) NextID(string) string { return string(id) }
