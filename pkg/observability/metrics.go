/*
Package observability provides Prometheus metrics for the workbench.

Metrics cover simulation activity, circuit loads by status and truth-table
generation cost. They are exposed through the /metrics endpoint of the HTTP
adapter. All metric operations are thread-safe via Prometheus's internal
locking.
*/
package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/ports"
)

const metricsNamespace = "breadboard"

// Metrics holds the workbench metric set. Create one per registry; tests
// pass their own prometheus.NewRegistry() to avoid collisions.
type Metrics struct {
	// SimulationUpdates counts simulation notifications: steps, starts,
	// stops and resets.
	SimulationUpdates prometheus.Counter

	// CircuitLoads counts repository loads.
	// Labels: status (success, not_found, error)
	CircuitLoads *prometheus.CounterVec

	// TruthTableDuration measures truth-table generation time. Exhaustive
	// enumeration doubles per switch, so the buckets span wide.
	TruthTableDuration prometheus.Histogram
}

// New creates and registers the metric set. A nil registerer uses the
// default global registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		SimulationUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sim",
			Name:      "updates_total",
			Help:      "Total simulation updates (steps, starts, stops, resets)",
		}),
		CircuitLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "library",
			Name:      "loads_total",
			Help:      "Total circuit loads by status",
		}, []string{"status"}),
		TruthTableDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "truthtable",
			Name:      "duration_seconds",
			Help:      "Truth table generation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
	reg.MustRegister(m.SimulationUpdates, m.CircuitLoads, m.TruthTableDuration)
	return m
}

// SimulationUpdated implements sim.Listener, so the metric set can be
// registered directly on a simulation context.
func (m *Metrics) SimulationUpdated() {
	m.SimulationUpdates.Inc()
}

// ObserveTruthTable records one generation run.
func (m *Metrics) ObserveTruthTable(d time.Duration) {
	m.TruthTableDuration.Observe(d.Seconds())
}

// InstrumentRepository wraps a repository so every load is counted.
func (m *Metrics) InstrumentRepository(next ports.CircuitRepository) ports.CircuitRepository {
	return &instrumentedRepository{next: next, metrics: m}
}

type instrumentedRepository struct {
	next    ports.CircuitRepository
	metrics *Metrics
}

func (r *instrumentedRepository) LoadCircuit(name string) (*domain.Circuit, error) {
	circuit, err := r.next.LoadCircuit(name)
	switch {
	case err == nil:
		r.metrics.CircuitLoads.WithLabelValues("success").Inc()
	case errors.Is(err, domain.ErrCircuitNotFound):
		r.metrics.CircuitLoads.WithLabelValues("not_found").Inc()
	default:
		r.metrics.CircuitLoads.WithLabelValues("error").Inc()
	}
	return circuit, err
}

func (r *instrumentedRepository) ListCircuits() ([]string, error) {
	return r.next.ListCircuits()
}
