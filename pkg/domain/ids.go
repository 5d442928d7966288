package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator mints ids for components, connectors and circuits. It is an
// injected capability rather than package state, so tests get readable
// deterministic ids and applications get collision-free ones.
type IDGenerator interface {
	NextID(prefix string) string
}

// SequentialGenerator produces prefix-1, prefix-2, ... per prefix. Not safe
// for concurrent use; the core is single-threaded by contract.
type SequentialGenerator struct {
	counts map[string]int
}

// NewSequentialGenerator creates an empty sequential generator.
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{counts: make(map[string]int)}
}

// NextID returns the next id for the prefix.
func (g *SequentialGenerator) NextID(prefix string) string {
	g.counts[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.counts[prefix])
}

// UUIDGenerator produces prefix-<uuid> ids.
type UUIDGenerator struct{}

// NextID returns a fresh random id for the prefix.
func (UUIDGenerator) NextID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
