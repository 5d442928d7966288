package tui

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/truthtable"
)

// TruthTableMarkdown builds a markdown table for rendering through glamour.
// Inputs read 0/1 with the first-discovered switch as the most significant
// column; the derived expression for each output is appended below.
func TruthTableMarkdown(name string, table *truthtable.Table) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(name)
	sb.WriteString("\n\n")

	if table == nil || len(table.Rows) == 0 {
		sb.WriteString("_No truth table: the circuit needs at least one switch and one led._\n")
		return sb.String()
	}

	sb.WriteString("| ")
	sb.WriteString(strings.Join(table.InputColumns, " | "))
	sb.WriteString(" || ")
	sb.WriteString(strings.Join(table.OutputColumns, " | "))
	sb.WriteString(" |\n|")
	sb.WriteString(strings.Repeat("---|", len(table.InputColumns)+len(table.OutputColumns)+1))
	sb.WriteString("\n")

	for _, row := range table.Rows {
		sb.WriteString("| ")
		sb.WriteString(joinBits(row.Inputs))
		sb.WriteString(" || ")
		sb.WriteString(joinBits(row.Outputs))
		sb.WriteString(" |\n")
	}

	sb.WriteString("\n")
	for i, col := range table.OutputColumns {
		expr, err := truthtable.DeriveExpression(table, i)
		if err != nil {
			continue
		}
		sb.WriteString("**")
		sb.WriteString(col)
		sb.WriteString("** = ")
		sb.WriteString(expr)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func joinBits(bits []bool) string {
	cells := make([]string, len(bits))
	for i, b := range bits {
		if b {
			cells[i] = "1"
		} else {
			cells[i] = "0"
		}
	}
	return strings.Join(cells, " | ")
}

// StatusLine formats the live state of a circuit's switches and leds with
// signal colors: green for high, default for low.
func StatusLine(circuit *domain.Circuit) string {
	if circuit == nil {
		return ""
	}
	p := termenv.ColorProfile()

	var parts []string
	for _, sw := range circuit.Switches() {
		label := sw.Name + "=0"
		if sw.State {
			label = sw.Name + "=1"
			parts = append(parts, termenv.String(label).Foreground(p.Color("#22c55e")).Bold().String())
			continue
		}
		parts = append(parts, label)
	}
	for _, led := range circuit.Leds() {
		label := led.Name + " ○"
		if led.IsLit() {
			label = led.Name + " ●"
			parts = append(parts, termenv.String(label).Foreground(p.Color("#22c55e")).Bold().String())
			continue
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}
