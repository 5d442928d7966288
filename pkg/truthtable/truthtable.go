// Package truthtable enumerates a circuit's behavior exhaustively and
// derives sum-of-products boolean expressions from the result.
package truthtable

import (
	"github.com/aretw0/breadboard/pkg/domain"
)

// DefaultSettleSteps is how many evaluation cycles each row runs before
// outputs are read. Two execute passes per cycle settle roughly one logic
// level each, so five cycles cover the depth of typical hand-built circuits.
// It is an empirical bound, not a convergence proof: deeper circuits need
// WithSettleSteps, and a feedback loop never converges at all.
const DefaultSettleSteps = 5

// Row is one enumerated input combination and the outputs it produced.
type Row struct {
	Inputs  []bool `json:"inputs"`
	Outputs []bool `json:"outputs"`
}

// Table is the externally consumable result: input columns are the
// circuit's switches and output columns its leds, both in discovery order.
type Table struct {
	InputColumns  []string `json:"input_columns"`
	OutputColumns []string `json:"output_columns"`
	Rows          []Row    `json:"rows"`
}

// Generator produces truth tables for circuits.
type Generator struct {
	settleSteps int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSettleSteps overrides the per-row settling cycle count for circuits
// deeper than the default bound covers.
func WithSettleSteps(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.settleSteps = n
		}
	}
}

// NewGenerator creates a truth-table generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{settleSteps: DefaultSettleSteps}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate enumerates all 2^n input combinations of the circuit's n switches
// and records the led outputs for each. Row i assigns bit (n-1-j) of i to
// switch j, so the first-discovered switch is the most significant column.
// A circuit without switches or without leds yields an empty table.
//
// Generation mutates the circuit's signal state; it leaves the circuit in
// the state of the last enumerated row.
func (g *Generator) Generate(circuit *domain.Circuit) *Table {
	table := &Table{}
	if circuit == nil {
		return table
	}

	switches := circuit.Switches()
	leds := circuit.Leds()
	if len(switches) == 0 || len(leds) == 0 {
		return table
	}

	for _, sw := range switches {
		table.InputColumns = append(table.InputColumns, sw.Name)
	}
	for _, led := range leds {
		table.OutputColumns = append(table.OutputColumns, led.Name)
	}

	n := len(switches)
	for i := 0; i < 1<<n; i++ {
		// Start each row from a clean slate so residue from the previous
		// combination cannot leak into this one.
		circuit.ClearSignals()

		for j, sw := range switches {
			v := i&(1<<(n-1-j)) != 0
			// SetState executes the switch immediately, so its output is
			// live before the settling cycles start.
			sw.SetState(v)
		}

		for s := 0; s < g.settleSteps; s++ {
			circuit.Step()
		}

		row := Row{
			Inputs:  make([]bool, 0, len(switches)),
			Outputs: make([]bool, 0, len(leds)),
		}
		for _, sw := range switches {
			row.Inputs = append(row.Inputs, sw.State)
		}
		for _, led := range leds {
			// One more execute so the led reflects its final input value.
			led.Execute()
			row.Outputs = append(row.Outputs, led.IsLit())
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
