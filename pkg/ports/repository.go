package ports

import (
	"context"

	"github.com/aretw0/breadboard/pkg/domain"
)

// CircuitRepository is read access to a named collection of circuits.
//
// LoadCircuit must return a fresh object graph on every call: two loads of
// the same name never share components, so mutating one simulation cannot
// leak into another. A missing name is domain.ErrCircuitNotFound.
type CircuitRepository interface {
	domain.CircuitLoader

	// ListCircuits returns the names of every circuit in the collection.
	ListCircuits() ([]string, error)
}

// CircuitStore is a repository with write access.
type CircuitStore interface {
	CircuitRepository

	// SaveCircuit persists the circuit under the given name, replacing any
	// previous version.
	SaveCircuit(ctx context.Context, name string, circuit *domain.Circuit) error

	// DeleteCircuit removes the named circuit. Deleting a name that does not
	// exist returns domain.ErrCircuitNotFound.
	DeleteCircuit(ctx context.Context, name string) error
}

// Watchable is implemented by repositories that can notify about backend
// changes, typically for hot reload in dev mode. The channel carries the
// name of the changed circuit and is closed when ctx ends.
type Watchable interface {
	Watch(ctx context.Context) (<-chan string, error)
}
