// Package memory implements ports.CircuitStore with an in-memory map,
// primarily for tests and for embedding circuits in other programs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/schema"
)

// Store keeps circuits as encoded documents and decodes on every load, so
// loads are isolated from each other exactly as with a disk-backed store.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// NewFromCircuits creates a store pre-populated with the given circuits,
// keyed by their names. This handles encoding automatically, improving DX
// for tests.
func NewFromCircuits(circuits ...*domain.Circuit) (*Store, error) {
	s := NewStore()
	for _, c := range circuits {
		if c == nil || c.Name == "" {
			return nil, fmt.Errorf("circuit missing name")
		}
		if err := s.SaveCircuit(context.Background(), c.Name, c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewFromProject creates a store holding every circuit of the project, so a
// persistence collaborator's project graph becomes a loadable library.
func NewFromProject(p *domain.Project) (*Store, error) {
	if p == nil {
		return NewStore(), nil
	}
	return NewFromCircuits(p.Circuits...)
}

// LoadCircuit decodes a fresh graph for the named circuit. Sub-circuit
// components are wired back to this store for their own lazy loads.
func (s *Store) LoadCircuit(name string) (*domain.Circuit, error) {
	s.mu.RLock()
	data, ok := s.data[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("circuit %q: %w", name, domain.ErrCircuitNotFound)
	}
	return schema.Decode(data, schema.WithLoader(s))
}

// ListCircuits returns all circuit names in deterministic order.
func (s *Store) ListCircuits() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// SaveCircuit encodes and stores the circuit under the given name.
func (s *Store) SaveCircuit(_ context.Context, name string, circuit *domain.Circuit) error {
	data, err := schema.Encode(circuit)
	if err != nil {
		return fmt.Errorf("save circuit %q: %w", name, err)
	}
	s.mu.Lock()
	s.data[name] = data
	s.mu.Unlock()
	return nil
}

// DeleteCircuit removes the named circuit.
func (s *Store) DeleteCircuit(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; !ok {
		return fmt.Errorf("circuit %q: %w", name, domain.ErrCircuitNotFound)
	}
	delete(s.data, name)
	return nil
}
