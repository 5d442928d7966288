package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/breadboard/internal/testutils"
	"github.com/aretw0/breadboard/pkg/ports"
	"github.com/aretw0/breadboard/pkg/schema"
)

func TestLibraryContract(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	ports.RunCircuitStoreContract(t, New(dir, repo))
}

func TestLoadHandwrittenDocument(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	// The on-disk form is plain frontmatter, editable without any tooling.
	doc := core.Document{
		ID: "and2.md",
		Content: `---
name: and2
components:
  - id: switch-1
    kind: switch
    name: A
  - id: switch-2
    kind: switch
    name: B
  - id: and-1
    kind: and
  - id: led-1
    kind: led
    name: Q
connectors:
  - id: conn-1
    from: {component: switch-1, port: out0}
    to: {component: and-1, port: in0}
  - id: conn-2
    from: {component: switch-2, port: out0}
    to: {component: and-1, port: in1}
  - id: conn-3
    from: {component: and-1, port: out0}
    to: {component: led-1, port: in0}
---

# and2
`,
	}
	require.NoError(t, repo.Save(ctx, doc))

	lib := New(dir, repo)
	circuit, err := lib.LoadCircuit("and2")
	require.NoError(t, err)
	require.Len(t, circuit.Components, 4)
	require.Len(t, circuit.Connectors, 3)

	for _, sw := range circuit.Switches() {
		sw.SetState(true)
	}
	circuit.Step()
	assert.True(t, circuit.Leds()[0].IsLit(), "loaded circuit should compute AND")
}

func TestNestedSubCircuitResolvesAgainstLibrary(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	inverter := core.Document{
		ID: "inverter.md",
		Content: `---
name: inverter
components:
  - id: in-1
    kind: switch
    name: in
  - id: not-1
    kind: not
  - id: out-1
    kind: led
    name: out
connectors:
  - id: conn-1
    from: {component: in-1, port: out0}
    to: {component: not-1, port: in0}
  - id: conn-2
    from: {component: not-1, port: out0}
    to: {component: out-1, port: in0}
---

# inverter
`,
	}
	outer := core.Document{
		ID: "outer.md",
		Content: `---
name: outer
components:
  - id: switch-1
    kind: switch
    name: A
  - id: sub-1
    kind: subcircuit
    name: Inv
    circuit: inverter
  - id: led-1
    kind: led
    name: Q
connectors:
  - id: conn-1
    from: {component: switch-1, port: out0}
    to: {component: sub-1, port: in0}
  - id: conn-2
    from: {component: sub-1, port: out0}
    to: {component: led-1, port: in0}
---

# outer
`,
	}
	require.NoError(t, repo.Save(ctx, inverter))
	require.NoError(t, repo.Save(ctx, outer))

	lib := New(dir, repo)
	circuit, err := lib.LoadCircuit("outer")
	require.NoError(t, err)
	require.Len(t, circuit.Connectors, 2, "sub-circuit ports should resolve through the library")

	for i := 0; i < 5; i++ {
		circuit.Step()
	}
	circuit.Leds()[0].Execute()
	assert.True(t, circuit.Leds()[0].IsLit(), "low input through the inverter should light the led")
}

func TestLoadShorthandEndpoints(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	// Endpoints may be written as "component.port" instead of inline maps.
	doc := core.Document{
		ID: "buffer.md",
		Content: `---
name: buffer
components:
  - id: switch-1
    kind: switch
    name: A
  - id: led-1
    kind: led
    name: Q
connectors:
  - id: conn-1
    from: switch-1.out0
    to: led-1.in0
---

# buffer
`,
	}
	require.NoError(t, repo.Save(ctx, doc))

	lib := New(dir, repo)
	circuit, err := lib.LoadCircuit("buffer")
	require.NoError(t, err)
	require.Len(t, circuit.Connectors, 1)

	circuit.Switches()[0].SetState(true)
	circuit.Step()
	assert.True(t, circuit.Leds()[0].IsLit())
}

func TestDecodeEndpoint(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want schema.Endpoint
	}{
		{"shorthand", "and-1.out0", schema.Endpoint{Component: "and-1", Port: "out0"}},
		{"dotted component", "gates.and-1.out0", schema.Endpoint{Component: "gates.and-1", Port: "out0"}},
		{"map", map[string]any{"component": "and-1", "port": "in1"}, schema.Endpoint{Component: "and-1", Port: "in1"}},
		{"bare string", "and-1", schema.Endpoint{}},
		{"trailing dot", "and-1.", schema.Endpoint{}},
		{"nil", nil, schema.Endpoint{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeEndpoint(tc.in))
		})
	}
}

func TestDocuments(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	// A dangling connector survives in the document form even though the
	// decoder would drop it; validation relies on that.
	doc := core.Document{
		ID: "broken.md",
		Content: `---
name: broken
components:
  - id: switch-1
    kind: switch
connectors:
  - id: conn-1
    from: switch-1.out0
    to: ghost.in0
---
`,
	}
	require.NoError(t, repo.Save(ctx, doc))

	lib := New(dir, repo)
	docs, err := lib.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "broken", docs[0].Name)
	require.Len(t, docs[0].Connectors, 1)
	assert.Error(t, schema.Validate(docs[0]))
}

func TestListCollision(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, core.Document{ID: "a.md", Content: "---\nname: same\n---\n"}))
	require.NoError(t, repo.Save(ctx, core.Document{ID: "b.md", Content: "---\nname: same\n---\n"}))

	lib := New(dir, repo)
	_, err := lib.ListCircuits()
	assert.ErrorContains(t, err, "collision")
}
