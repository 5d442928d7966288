// Package sim drives a single circuit: evaluation cycles, quiescent reset,
// and change notification for presentation layers.
package sim

import (
	"github.com/aretw0/breadboard/pkg/domain"
)

// Listener is notified after every step, start, stop and reset. There is no
// payload; consumers re-read the circuit they are watching.
type Listener interface {
	SimulationUpdated()
}

// Context owns the simulation state for one circuit. It is single-threaded:
// exactly one caller drives a context at a time, and continuous running is
// realized by an external ticker calling Step repeatedly.
type Context struct {
	circuit   *domain.Circuit
	running   bool
	listeners []Listener
}

// New creates a context for the given circuit (which may be nil).
func New(circuit *domain.Circuit) *Context {
	return &Context{circuit: circuit}
}

// Circuit returns the circuit being simulated.
func (c *Context) Circuit() *domain.Circuit {
	return c.circuit
}

// SetCircuit swaps the circuit under simulation.
func (c *Context) SetCircuit(circuit *domain.Circuit) {
	c.circuit = circuit
}

// Running reports the advisory running flag. The context never schedules
// steps itself; the flag only tells the external ticker what to do.
func (c *Context) Running() bool {
	return c.running
}

// Step runs one evaluation cycle and notifies listeners. The cycle executes
// every component, propagates every connector, then executes every component
// again, so each call settles roughly one level of cascaded logic. Callers
// needing a fully settled multi-level circuit step repeatedly.
func (c *Context) Step() {
	if c.circuit == nil {
		return
	}
	c.circuit.Step()
	c.notify()
}

// Start raises the running flag and notifies.
func (c *Context) Start() {
	c.running = true
	c.notify()
}

// Stop lowers the running flag and notifies.
func (c *Context) Stop() {
	c.running = false
	c.notify()
}

// Reset returns the circuit to its quiescent zero state: every switch off,
// every port and cached connector value low, then one execute pass so
// component mirrors agree. Calling it twice leaves the same state as once.
func (c *Context) Reset() {
	if c.circuit != nil {
		c.circuit.ClearSignals()
		for _, comp := range c.circuit.Components {
			comp.Execute()
		}
	}
	c.notify()
}

// AddListener registers a listener. Nil and already-registered listeners are
// ignored.
func (c *Context) AddListener(l Listener) {
	if l == nil {
		return
	}
	for _, existing := range c.listeners {
		if existing == l {
			return
		}
	}
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters a listener.
func (c *Context) RemoveListener(l Listener) {
	kept := c.listeners[:0]
	for _, existing := range c.listeners {
		if existing != l {
			kept = append(kept, existing)
		}
	}
	c.listeners = kept
}

func (c *Context) notify() {
	for _, l := range c.listeners {
		l.SimulationUpdated()
	}
}
