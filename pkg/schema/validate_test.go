package schema_test

import (
	"strings"
	"testing"

	"github.com/aretw0/breadboard/pkg/schema"
)

func validDocument() *schema.Document {
	return &schema.Document{
		Name: "and2",
		Components: []schema.ComponentDef{
			{ID: "switch-1", Kind: "switch", Name: "A"},
			{ID: "switch-2", Kind: "switch", Name: "B"},
			{ID: "and-1", Kind: "and"},
			{ID: "led-1", Kind: "led", Name: "Q"},
		},
		Connectors: []schema.ConnectorDef{
			{ID: "conn-1", From: schema.Endpoint{Component: "switch-1", Port: "out0"}, To: schema.Endpoint{Component: "and-1", Port: "in0"}},
			{ID: "conn-2", From: schema.Endpoint{Component: "switch-2", Port: "out0"}, To: schema.Endpoint{Component: "and-1", Port: "in1"}},
			{ID: "conn-3", From: schema.Endpoint{Component: "and-1", Port: "out0"}, To: schema.Endpoint{Component: "led-1", Port: "in0"}},
		},
	}
}

func TestValidateCleanDocument(t *testing.T) {
	if err := schema.Validate(validDocument()); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
	if err := schema.Validate(nil); err != nil {
		t.Errorf("nil document rejected: %v", err)
	}
}

func TestValidateDefects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*schema.Document)
		message string
	}{
		{
			name: "duplicate component id",
			mutate: func(d *schema.Document) {
				d.Components = append(d.Components, schema.ComponentDef{ID: "switch-1", Kind: "switch"})
			},
			message: "used more than once",
		},
		{
			name: "unknown kind",
			mutate: func(d *schema.Document) {
				d.Components[2].Kind = "nand"
			},
			message: "not a component kind",
		},
		{
			name: "sub-circuit without reference",
			mutate: func(d *schema.Document) {
				d.Components = append(d.Components, schema.ComponentDef{ID: "sub-1", Kind: "subcircuit"})
			},
			message: "missing circuit reference",
		},
		{
			name: "dangling source",
			mutate: func(d *schema.Document) {
				d.Connectors[0].From.Component = "ghost"
			},
			message: "not in document",
		},
		{
			name: "source port is an input",
			mutate: func(d *schema.Document) {
				d.Connectors[0].From.Port = "in0"
			},
			message: "not an output",
		},
		{
			name: "sink port is an output",
			mutate: func(d *schema.Document) {
				d.Connectors[0].To.Port = "out0"
			},
			message: "not an input",
		},
		{
			name: "two wires into one sink",
			mutate: func(d *schema.Document) {
				d.Connectors[1].To = d.Connectors[0].To
			},
			message: "already driven",
		},
		{
			name: "duplicate connector id",
			mutate: func(d *schema.Document) {
				d.Connectors[1].ID = d.Connectors[0].ID
			},
			message: "used more than once",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDocument()
			tc.mutate(doc)
			err := schema.Validate(doc)
			if err == nil {
				t.Fatal("defect not reported")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Errorf("error %q does not mention %q", err, tc.message)
			}
		})
	}
}

func TestValidateAggregatesAllDefects(t *testing.T) {
	doc := validDocument()
	doc.Components[2].Kind = "nand"
	doc.Connectors[0].From.Component = "ghost"
	doc.Connectors[2].To.Port = "out0"

	err := schema.Validate(doc)
	if err == nil {
		t.Fatal("defects not reported")
	}
	if got := len(schema.ValidationErrors(err)); got != 3 {
		t.Errorf("expected 3 defects in one pass, got %d: %v", got, err)
	}
}
