// Package redis implements ports.CircuitStore on a Redis instance, for
// setups where several workbench processes share one circuit library.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/schema"
)

// Store keeps each circuit under <prefix>circuit:<name> and maintains a
// sorted-set index of names for listing.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the store.
type Option func(*Store)

// WithTTL sets an expiration on saved circuits. Zero (the default) keeps
// them forever. The index entry is removed lazily on the next failed load.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix changes the key prefix, for sharing a Redis database with
// other applications. Defaults to "breadboard:".
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to the given address and creates a store.
func New(addr string, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{Addr: addr})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a store around an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "breadboard:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) circuitKey(name string) string {
	return s.prefix + "circuit:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "circuits"
}

// LoadCircuit fetches and decodes a fresh graph. An expired or missing key
// is domain.ErrCircuitNotFound, and its index entry is dropped.
func (s *Store) LoadCircuit(name string) (*domain.Circuit, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, s.circuitKey(name)).Bytes()
	if errors.Is(err, backend.Nil) {
		s.client.ZRem(ctx, s.indexKey(), name)
		return nil, fmt.Errorf("circuit %q: %w", name, domain.ErrCircuitNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get circuit %q: %w", name, err)
	}
	return schema.Decode(data, schema.WithLoader(s))
}

// ListCircuits returns the indexed names in insertion order.
func (s *Store) ListCircuits() ([]string, error) {
	names, err := s.client.ZRange(context.Background(), s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list circuits: %w", err)
	}
	return names, nil
}

// SaveCircuit encodes and writes the circuit plus its index entry in one
// pipeline round trip.
func (s *Store) SaveCircuit(ctx context.Context, name string, circuit *domain.Circuit) error {
	data, err := schema.Encode(circuit)
	if err != nil {
		return fmt.Errorf("save circuit %q: %w", name, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.circuitKey(name), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: name,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save circuit %q: %w", name, err)
	}
	return nil
}

// DeleteCircuit removes the circuit and its index entry.
func (s *Store) DeleteCircuit(ctx context.Context, name string) error {
	removed, err := s.client.Del(ctx, s.circuitKey(name)).Result()
	if err != nil {
		return fmt.Errorf("redis delete circuit %q: %w", name, err)
	}
	s.client.ZRem(ctx, s.indexKey(), name)
	if removed == 0 {
		return fmt.Errorf("circuit %q: %w", name, domain.ErrCircuitNotFound)
	}
	return nil
}
