// Package mcp exposes the circuit library to AI agents over the Model
// Context Protocol, as a set of tools for browsing, simulating and
// analyzing circuits.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/breadboard"
	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/ports"
	"github.com/aretw0/breadboard/pkg/schema"
	"github.com/aretw0/breadboard/pkg/truthtable"
)

// SimulateResponse reports led states after a simulation run.
type SimulateResponse struct {
	Circuit string          `json:"circuit" jsonschema_description:"Name of the simulated circuit"`
	Outputs map[string]bool `json:"outputs" jsonschema_description:"Each led's lit state after settling"`
}

// TruthTableResponse pairs the full table with one derived boolean
// expression per output column.
type TruthTableResponse struct {
	Table       *truthtable.Table `json:"table" jsonschema_description:"The exhaustive truth table"`
	Expressions []string          `json:"expressions" jsonschema_description:"Sum-of-products expression per output column"`
}

// Server wraps a circuit repository and exposes it as an MCP server.
type Server struct {
	repo      ports.CircuitRepository
	generator *truthtable.Generator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server over the repository.
func NewServer(repo ports.CircuitRepository) *Server {
	s := &Server{
		repo:      repo,
		generator: truthtable.NewGenerator(),
		mcpServer: server.NewMCPServer("breadboard-mcp", strings.TrimSpace(breadboard.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: list_circuits
	s.mcpServer.AddTool(mcp.NewTool("list_circuits",
		mcp.WithDescription("List the names of every circuit in the library."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.repo.ListCircuits()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_circuit
	getTool := mcp.NewTool("get_circuit",
		mcp.WithDescription("Get the full definition of a circuit: components, wiring and positions."),
		mcp.WithString("circuit", mcp.Required(), mcp.Description("Name of the circuit")),
		mcp.WithOutputSchema[schema.Document](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetCircuit))

	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Latch switch values on a circuit, let it settle, and report the led states."),
		mcp.WithString("circuit", mcp.Required(), mcp.Description("Name of the circuit")),
		mcp.WithString("inputs", mcp.Description("JSON object mapping switch names to booleans, e.g. {\"A\": true}")),
		mcp.WithString("steps", mcp.Description("Number of settling steps (optional, default 5)")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: truth_table
	tableTool := mcp.NewTool("truth_table",
		mcp.WithDescription("Enumerate every input combination of a circuit and derive a boolean expression per output."),
		mcp.WithString("circuit", mcp.Required(), mcp.Description("Name of the circuit")),
		mcp.WithOutputSchema[TruthTableResponse](),
	)
	s.mcpServer.AddTool(tableTool, mcp.NewStructuredToolHandler(s.handleTruthTable))
}

// Handler methods for structured tools

func (s *Server) handleGetCircuit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (schema.Document, error) {
	name, _ := args["circuit"].(string)
	circuit, err := s.repo.LoadCircuit(name)
	if err != nil {
		return schema.Document{}, fmt.Errorf("load failed: %w", err)
	}
	return *schema.FromCircuit(circuit), nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	name, _ := args["circuit"].(string)

	inputs := make(map[string]bool)
	if inputsStr, ok := args["inputs"].(string); ok && inputsStr != "" {
		if err := json.Unmarshal([]byte(inputsStr), &inputs); err != nil {
			return SimulateResponse{}, fmt.Errorf("inputs rejected: %w", err)
		}
	}

	steps := truthtable.DefaultSettleSteps
	if stepsStr, ok := args["steps"].(string); ok && stepsStr != "" {
		parsed, err := strconv.Atoi(stepsStr)
		if err != nil || parsed <= 0 {
			return SimulateResponse{}, fmt.Errorf("steps must be a positive integer, got %q", stepsStr)
		}
		steps = parsed
	}

	circuit, err := s.repo.LoadCircuit(name)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("load failed: %w", err)
	}

	switches := make(map[string]*domain.Component)
	for _, sw := range circuit.Switches() {
		switches[sw.Name] = sw
	}
	for swName, value := range inputs {
		sw, ok := switches[swName]
		if !ok {
			return SimulateResponse{}, fmt.Errorf("no switch named %q in circuit %q", swName, name)
		}
		sw.SetState(value)
	}

	for i := 0; i < steps; i++ {
		circuit.Step()
	}

	outputs := make(map[string]bool)
	for _, led := range circuit.Leds() {
		led.Execute()
		outputs[led.Name] = led.IsLit()
	}
	return SimulateResponse{Circuit: name, Outputs: outputs}, nil
}

func (s *Server) handleTruthTable(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TruthTableResponse, error) {
	name, _ := args["circuit"].(string)

	circuit, err := s.repo.LoadCircuit(name)
	if err != nil {
		return TruthTableResponse{}, fmt.Errorf("load failed: %w", err)
	}

	table := s.generator.Generate(circuit)
	resp := TruthTableResponse{Table: table, Expressions: []string{}}
	for i := range table.OutputColumns {
		expr, err := truthtable.DeriveExpression(table, i)
		if err != nil {
			return TruthTableResponse{}, fmt.Errorf("expression failed for output %d: %w", i, err)
		}
		resp.Expressions = append(resp.Expressions, expr)
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: breadboard://library
	s.mcpServer.AddResource(mcp.NewResource("breadboard://library", "Circuit Library Index",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.repo.ListCircuits()
		if err != nil {
			return nil, fmt.Errorf("failed to list circuits: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "breadboard://library",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
