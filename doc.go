/*
Package breadboard is a digital logic workbench: build circuits from gates,
switches and leds, wire them together, simulate them, and derive truth
tables and boolean expressions from the result.

Circuits are plain object graphs (see pkg/domain) driven by a two-pass
evaluation cycle: execute every component, propagate every wire, execute
again. Repeating the cycle settles multi-level logic one layer at a time,
which is also how the truth-table generator samples each input combination.

A circuit can embed another circuit as a single component. Sub-circuits are
loaded lazily by name through a CircuitLoader, so a library of circuits
composes without eagerly materializing the whole tree, and a missing or
cyclic reference degrades to a dead component instead of failing the parent.

The Workbench binds a circuit repository to these operations. Repositories
are pluggable (see pkg/ports): a Loam markdown library on disk, an
in-memory store, or Redis. The same library backs the CLI, an HTTP API and
an MCP server for AI agents (see pkg/adapters).

	wb, err := breadboard.Open("./circuits")
	if err != nil {
		log.Fatal(err)
	}
	table, err := wb.TruthTable("half-adder")

This Hexagonal Architecture keeps the simulation core free of storage and
transport concerns, so it can be embedded in any interface.
*/
package breadboard
