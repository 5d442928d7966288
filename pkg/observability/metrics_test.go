package observability_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/breadboard/internal/sim"
	"github.com/aretw0/breadboard/pkg/adapters/memory"
	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/observability"
)

func newTestMetrics(t *testing.T) *observability.Metrics {
	t.Helper()
	return observability.New(prometheus.NewRegistry())
}

func TestSimulationListener(t *testing.T) {
	m := newTestMetrics(t)

	gen := domain.NewSequentialGenerator()
	circuit := domain.NewCircuit("c", "c")
	circuit.AddComponent(domain.NewSwitch(gen, "A", domain.Point{}))

	ctx := sim.New(circuit)
	ctx.AddListener(m)

	ctx.Step()
	ctx.Step()
	ctx.Reset()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SimulationUpdates))
}

func TestInstrumentedRepository(t *testing.T) {
	m := newTestMetrics(t)

	gen := domain.NewSequentialGenerator()
	wire := domain.NewCircuit("wire", "wire")
	wire.AddComponent(domain.NewSwitch(gen, "A", domain.Point{}))
	store, err := memory.NewFromCircuits(wire)
	require.NoError(t, err)

	repo := m.InstrumentRepository(store)

	_, err = repo.LoadCircuit("wire")
	require.NoError(t, err)
	_, err = repo.LoadCircuit("ghost")
	require.ErrorIs(t, err, domain.ErrCircuitNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CircuitLoads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CircuitLoads.WithLabelValues("not_found")))

	names, err := repo.ListCircuits()
	require.NoError(t, err)
	assert.Equal(t, []string{"wire"}, names)
}

func TestObserveTruthTable(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveTruthTable(25 * time.Millisecond)

	var metric dto.Metric
	require.NoError(t, m.TruthTableDuration.Write(&metric))
	assert.Equal(t, uint64(1), metric.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.025, metric.GetHistogram().GetSampleSum(), 1e-9)
}
