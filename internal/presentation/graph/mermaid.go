// Package graph renders circuits as Mermaid flowcharts for docs and quick
// visual inspection.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/breadboard/pkg/domain"
)

// GenerateMermaid produces Mermaid flowchart syntax for a circuit.
// It applies semantic shapes:
// - Switch: ((Circle))
// - Led: [/Parallelogram/]
// - Sub-circuit: [[Subroutine]]
// - Gate: [Rectangle]
// Wires carrying a high signal are drawn green, lit leds and closed
// switches get a highlight class, so a rendered snapshot shows the live
// state, not just the topology.
func GenerateMermaid(circuit *domain.Circuit) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if circuit == nil {
		return sb.String()
	}

	var active []string
	for _, comp := range circuit.Components {
		safeID := sanitizeMermaidID(comp.ID)

		opener, closer := "[", "]"
		switch comp.Kind {
		case domain.KindSwitch:
			opener, closer = "((", "))"
		case domain.KindLed:
			opener, closer = "[/", "/]"
		case domain.KindSubCircuit:
			opener, closer = "[[", "]]"
		}

		label := comp.Name
		if label == "" {
			label = string(comp.Kind)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		if (comp.Kind == domain.KindSwitch && comp.State) ||
			(comp.Kind == domain.KindLed && comp.Lit) {
			active = append(active, safeID)
		}
	}

	var highWires []int
	for i, conn := range circuit.Connectors {
		safeFrom := sanitizeMermaidID(conn.SourceComponent)
		safeTo := sanitizeMermaidID(conn.SinkComponent)
		port := ""
		if conn.SinkPort != nil {
			port = conn.SinkPort.ID
		}
		if port != "" {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeFrom, port, safeTo))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeFrom, safeTo))
		}
		if conn.Value {
			highWires = append(highWires, i)
		}
	}

	if len(active) > 0 || len(highWires) > 0 {
		sb.WriteString("\n    %% Signal Overlay\n")
	}
	if len(active) > 0 {
		sb.WriteString("    classDef active fill:#dcfce7,stroke:#16a34a,stroke-width:2px,color:#000;\n")
		for _, id := range active {
			sb.WriteString(fmt.Sprintf("    class %s active;\n", id))
		}
	}
	for _, i := range highWires {
		sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:%s,stroke-width:2px;\n", i, domain.ColorHigh))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
