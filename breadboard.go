package breadboard

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/breadboard/internal/logging"
	"github.com/aretw0/breadboard/internal/presentation/graph"
	loamAdapter "github.com/aretw0/breadboard/pkg/adapters/loam"
	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/observability"
	"github.com/aretw0/breadboard/pkg/ports"
	"github.com/aretw0/breadboard/pkg/truthtable"
)

// Version is the released version of the library.
const Version = "0.3.0"

// Workbench is the high-level entry point for the library. It binds a
// circuit repository to the simulation and analysis operations, the way a
// physical workbench binds a parts drawer to the board on the desk.
type Workbench struct {
	repo      ports.CircuitRepository
	generator *truthtable.Generator
	gen       domain.IDGenerator
	logger    *slog.Logger
	metrics   *observability.Metrics
	settle    int
	Name      string
}

// Option defines a functional option for configuring the Workbench.
type Option func(*Workbench)

// WithRepository injects a custom circuit repository, bypassing the default
// Loam initialization.
func WithRepository(repo ports.CircuitRepository) Option {
	return func(w *Workbench) {
		w.repo = repo
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workbench) {
		w.logger = logger
	}
}

// WithIDGenerator overrides how new component and connector ids are minted.
// The default is collision-free random ids; tests inject a sequential
// generator for readable fixtures.
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(w *Workbench) {
		w.gen = gen
	}
}

// WithMetrics attaches a metric set; loads and truth-table runs are then
// counted and timed.
func WithMetrics(m *observability.Metrics) Option {
	return func(w *Workbench) {
		w.metrics = m
	}
}

// WithSettleSteps overrides the settling cycle count used by truth-table
// generation and Simulate.
func WithSettleSteps(n int) Option {
	return func(w *Workbench) {
		w.generator = truthtable.NewGenerator(truthtable.WithSettleSteps(n))
		if n > 0 {
			w.settle = n
		}
	}
}

// Open initializes a Workbench. By default it opens a Loam circuit library
// at the given directory; WithRepository skips that and dir may be empty.
func Open(dir string, opts ...Option) (*Workbench, error) {
	w := &Workbench{
		generator: truthtable.NewGenerator(),
		gen:       domain.UUIDGenerator{},
		settle:    truthtable.DefaultSettleSteps,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.New(slog.LevelInfo)
	}

	if w.repo == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom repository is provided")
		}
		lib, err := loamAdapter.Open(dir)
		if err != nil {
			return nil, err
		}
		w.repo = lib
		w.Name = filepath.Base(lib.Dir())
	}

	if w.metrics != nil {
		w.repo = w.metrics.InstrumentRepository(w.repo)
	}
	return w, nil
}

// Repository exposes the underlying repository, for adapters that serve it
// directly.
func (w *Workbench) Repository() ports.CircuitRepository {
	return w.repo
}

// IDGenerator exposes the id generator for building circuits by hand.
func (w *Workbench) IDGenerator() domain.IDGenerator {
	return w.gen
}

// Circuits lists the names in the repository.
func (w *Workbench) Circuits() ([]string, error) {
	return w.repo.ListCircuits()
}

// Circuit loads a fresh instance of the named circuit.
func (w *Workbench) Circuit(name string) (*domain.Circuit, error) {
	return w.repo.LoadCircuit(name)
}

// Save persists a circuit, when the repository supports writing.
func (w *Workbench) Save(ctx context.Context, name string, circuit *domain.Circuit) error {
	store, ok := w.repo.(ports.CircuitStore)
	if !ok {
		return fmt.Errorf("repository for %q is read-only", w.Name)
	}
	return store.SaveCircuit(ctx, name, circuit)
}

// Simulate loads the named circuit, latches the given switch values, lets
// the circuit settle and reports each led's state.
func (w *Workbench) Simulate(name string, inputs map[string]bool) (map[string]bool, error) {
	circuit, err := w.repo.LoadCircuit(name)
	if err != nil {
		return nil, err
	}

	switches := make(map[string]*domain.Component)
	for _, sw := range circuit.Switches() {
		switches[sw.Name] = sw
	}
	for swName, value := range inputs {
		sw, ok := switches[swName]
		if !ok {
			return nil, fmt.Errorf("no switch named %q in circuit %q", swName, name)
		}
		sw.SetState(value)
	}

	for i := 0; i < w.settle; i++ {
		circuit.Step()
	}

	outputs := make(map[string]bool)
	for _, led := range circuit.Leds() {
		led.Execute()
		outputs[led.Name] = led.IsLit()
	}
	return outputs, nil
}

// TruthTable enumerates the named circuit exhaustively.
func (w *Workbench) TruthTable(name string) (*truthtable.Table, error) {
	circuit, err := w.repo.LoadCircuit(name)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	table := w.generator.Generate(circuit)
	if w.metrics != nil {
		w.metrics.ObserveTruthTable(time.Since(start))
	}
	return table, nil
}

// Expressions derives the sum-of-products expression for every output
// column of the named circuit's truth table.
func (w *Workbench) Expressions(name string) ([]string, error) {
	table, err := w.TruthTable(name)
	if err != nil {
		return nil, err
	}
	exprs := make([]string, 0, len(table.OutputColumns))
	for i := range table.OutputColumns {
		expr, err := truthtable.DeriveExpression(table, i)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// Mermaid renders the named circuit as a Mermaid flowchart.
func (w *Workbench) Mermaid(name string) (string, error) {
	circuit, err := w.repo.LoadCircuit(name)
	if err != nil {
		return "", err
	}
	return graph.GenerateMermaid(circuit), nil
}
