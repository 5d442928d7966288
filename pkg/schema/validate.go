package schema

import (
	"strings"

	"github.com/aretw0/breadboard/pkg/domain"
)

var knownKinds = map[string]struct{}{
	string(domain.KindAnd):        {},
	string(domain.KindOr):         {},
	string(domain.KindNot):        {},
	string(domain.KindSwitch):     {},
	string(domain.KindLed):        {},
	string(domain.KindSubCircuit): {},
}

// Validate checks a document for structural defects before it is decoded:
// duplicate ids, unknown component kinds, sub-circuits without a reference,
// connectors pointing at missing components, wires running against port
// direction, and two wires feeding the same sink port. All defects are
// reported together in one AggregateError; a clean document returns nil.
//
// Validation is stricter than decoding. Decode drops what it cannot resolve
// and keeps going; Validate exists so a caller can refuse the document
// outright instead.
func Validate(doc *Document) error {
	if doc == nil {
		return nil
	}

	var errs []error
	report := func(kind, ref, reason string) {
		errs = append(errs, &ValidationError{Kind: kind, Ref: ref, Reason: reason})
	}

	components := make(map[string]ComponentDef, len(doc.Components))
	for _, def := range doc.Components {
		if def.ID == "" {
			report("component", def.Name, "missing id")
			continue
		}
		if _, dup := components[def.ID]; dup {
			report("duplicate-id", def.ID, "component id used more than once")
			continue
		}
		components[def.ID] = def

		if _, ok := knownKinds[def.Kind]; !ok {
			report("unknown-kind", def.ID, "kind "+def.Kind+" is not a component kind")
		}
		if def.Kind == string(domain.KindSubCircuit) && def.Circuit == "" {
			report("sub-circuit", def.ID, "missing circuit reference")
		}
	}

	connectorIDs := make(map[string]struct{}, len(doc.Connectors))
	sinkFeeds := make(map[Endpoint]string, len(doc.Connectors))
	for _, def := range doc.Connectors {
		if def.ID != "" {
			if _, dup := connectorIDs[def.ID]; dup {
				report("duplicate-id", def.ID, "connector id used more than once")
			}
			connectorIDs[def.ID] = struct{}{}
		}

		if _, ok := components[def.From.Component]; !ok {
			report("dangling-connector", def.ID, "source component "+def.From.Component+" not in document")
		} else if !strings.HasPrefix(def.From.Port, "out") {
			report("port-direction", def.ID, "source port "+def.From.Port+" is not an output")
		}

		if _, ok := components[def.To.Component]; !ok {
			report("dangling-connector", def.ID, "sink component "+def.To.Component+" not in document")
			continue
		}
		if !strings.HasPrefix(def.To.Port, "in") {
			report("port-direction", def.ID, "sink port "+def.To.Port+" is not an input")
			continue
		}

		if prev, taken := sinkFeeds[def.To]; taken {
			report("contended-sink", def.ID, "sink port already driven by connector "+prev)
			continue
		}
		sinkFeeds[def.To] = def.ID
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
