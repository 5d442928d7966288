package domain

import "errors"

// ErrNilEndpoint is returned when a connection is requested with a missing
// component or port.
var ErrNilEndpoint = errors.New("connection endpoint is nil")

// ErrPortDirection is returned when a connection source is not an output
// port or a connection sink is not an input port.
var ErrPortDirection = errors.New("port direction mismatch")

// ErrNotInCircuit is returned when a connection references a component that
// is not a member of the circuit.
var ErrNotInCircuit = errors.New("component not in circuit")

// ErrCircuitNotFound is returned by loaders and stores when the named
// circuit does not exist.
var ErrCircuitNotFound = errors.New("circuit not found")

// ErrNoLoader is returned when a sub-circuit needs its body but no loader
// has been attached.
var ErrNoLoader = errors.New("no circuit loader attached")

// ErrSubCircuitCycle is returned when a circuit references itself as a
// sub-circuit, directly or through intermediate circuits.
var ErrSubCircuitCycle = errors.New("sub-circuit reference cycle")
