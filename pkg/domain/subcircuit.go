package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// CircuitLoader resolves a circuit name to a freshly built circuit graph.
// Implementations live in the adapter packages (file library, memory,
// redis); the domain only consumes the capability.
type CircuitLoader interface {
	LoadCircuit(name string) (*Circuit, error)
}

// loadState makes the sub-circuit lifecycle explicit instead of hiding it in
// lazily mutated fields.
type loadState int

const (
	subUnloaded loadState = iota
	subLoaded
	subFailed
)

// SubCircuit is the body of a KindSubCircuit component: a previously built
// circuit used as a black box. It stores only the referenced circuit's name;
// the body is fetched on first need through the attached loader. Until that
// first load the component reports zero ports.
type SubCircuit struct {
	// Ref is the name of the circuit this component wraps.
	Ref string

	state    loadState
	body     *Circuit
	switches []*Component
	leds     []*Component

	loader CircuitLoader
	logger *slog.Logger

	// trail is the chain of ancestor refs that led to this instance, used to
	// refuse cyclic references at load time.
	trail []string
}

// NewSubCircuit creates a sub-circuit component referencing a circuit by
// name. The body is not loaded until first use.
func NewSubCircuit(gen IDGenerator, name, ref string, loader CircuitLoader, pos Point) *Component {
	if name == "" {
		name = "SubCircuit"
	}
	return &Component{
		ID:       gen.NextID("sub"),
		Name:     name,
		Kind:     KindSubCircuit,
		Position: pos,
		Sub: &SubCircuit{
			Ref:    ref,
			loader: loader,
		},
	}
}

// SetCircuitLoader attaches the loader used for lazy loading. Decoders call
// this after rebuilding a circuit from a document, since loaders are not
// part of the persisted form.
func (c *Component) SetCircuitLoader(loader CircuitLoader) {
	if c.Kind == KindSubCircuit && c.Sub != nil {
		c.Sub.loader = loader
	}
}

// SetLogger routes the sub-circuit's degradation warnings. Defaults to
// slog.Default.
func (s *SubCircuit) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Body returns the loaded body circuit, attempting a load first. Nil when
// the body is unavailable.
func (s *SubCircuit) Body(owner *Component) *Circuit {
	s.ensureLoaded(owner)
	return s.body
}

// Loaded reports whether the body has been successfully loaded.
func (s *SubCircuit) Loaded() bool {
	return s.state == subLoaded
}

func (s *SubCircuit) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// ensureLoaded performs the Unloaded -> Loaded | Failed transition. A failed
// load degrades the component to zero ports and stays failed until
// UpdateSubCircuit or a new loader gives it another chance; the host
// circuit's simulation is never interrupted.
func (s *SubCircuit) ensureLoaded(owner *Component) {
	if s.state != subUnloaded {
		return
	}
	body, err := s.load()
	if err != nil {
		s.state = subFailed
		s.log().Warn("sub-circuit load failed, degrading to zero ports",
			"component", owner.ID, "circuit", s.Ref, "err", err)
		return
	}
	s.adopt(owner, body)
}

func (s *SubCircuit) load() (*Circuit, error) {
	if s.loader == nil {
		return nil, ErrNoLoader
	}
	if slices.Contains(s.trail, s.Ref) {
		return nil, fmt.Errorf("%w: %v -> %s", ErrSubCircuitCycle, s.trail, s.Ref)
	}
	body, err := s.loader.LoadCircuit(s.Ref)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, errors.New("loader returned no circuit")
	}
	return body, nil
}

// adopt installs a body: analyze it for switches and leds, pass the loader
// and cycle trail down to nested sub-circuits, and synthesize the owner's
// ports 1:1 with the findings, in discovery order.
func (s *SubCircuit) adopt(owner *Component, body *Circuit) {
	s.body = body
	s.switches = body.Switches()
	s.leds = body.Leds()
	s.state = subLoaded

	childTrail := append(slices.Clone(s.trail), s.Ref)
	for _, comp := range body.Components {
		if comp.Kind == KindSubCircuit && comp.Sub != nil {
			if comp.Sub.loader == nil {
				comp.Sub.loader = s.loader
			}
			comp.Sub.trail = childTrail
			comp.Sub.logger = s.logger
		}
	}

	owner.Inputs = make([]*Port, len(s.switches))
	for i := range s.switches {
		owner.Inputs[i] = NewPort(fmt.Sprintf("in%d", i), DirectionInput)
	}
	owner.Outputs = make([]*Port, len(s.leds))
	for i := range s.leds {
		owner.Outputs[i] = NewPort(fmt.Sprintf("out%d", i), DirectionOutput)
	}
}

// execute evaluates the black box: copy the owner's input port values into
// the body's switches, run one evaluation cycle on the body, then refresh
// each led and copy its lit state back out. One body cycle per outer execute
// means deeply cascaded bodies settle across repeated outer steps.
func (s *SubCircuit) execute(owner *Component) {
	s.ensureLoaded(owner)
	if s.body == nil {
		return
	}
	for i := 0; i < len(owner.Inputs) && i < len(s.switches); i++ {
		s.switches[i].SetState(owner.Inputs[i].Value)
	}
	s.body.Step()
	for i := 0; i < len(owner.Outputs) && i < len(s.leds); i++ {
		s.leds[i].Execute()
		owner.Outputs[i].Value = s.leds[i].Lit
	}
}

// UpdateSubCircuit replaces the body with a freshly loaded circuit and
// rebuilds the owner's ports from scratch. Used after the referenced circuit
// has been edited and re-saved.
func (c *Component) UpdateSubCircuit(body *Circuit) {
	if c.Kind != KindSubCircuit || c.Sub == nil {
		return
	}
	s := c.Sub
	s.body = nil
	s.switches = nil
	s.leds = nil
	s.state = subUnloaded
	c.Inputs = nil
	c.Outputs = nil
	if body != nil {
		s.adopt(c, body)
	}
}
