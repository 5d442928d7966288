// Package http exposes a circuit library over a small JSON API, so editors
// and dashboards can browse, simulate and tabulate circuits remotely.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/ports"
	"github.com/aretw0/breadboard/pkg/schema"
	"github.com/aretw0/breadboard/pkg/truthtable"
)

// Server serves one circuit repository.
type Server struct {
	Repo      ports.CircuitRepository
	Generator *truthtable.Generator
}

// NewHandler builds the routed handler for the repository.
func NewHandler(repo ports.CircuitRepository) http.Handler {
	server := &Server{
		Repo:      repo,
		Generator: truthtable.NewGenerator(),
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/circuits", server.ListCircuits)
	r.Get("/circuits/{name}", server.GetCircuit)
	r.Get("/circuits/{name}/truthtable", server.TruthTable)
	r.Post("/circuits/{name}/simulate", server.Simulate)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListCircuits handles GET /circuits.
func (s *Server) ListCircuits(w http.ResponseWriter, r *http.Request) {
	names, err := s.Repo.ListCircuits()
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		slog.Error("ListCircuits failed", "error", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"circuits": names})
}

// GetCircuit handles GET /circuits/{name}, returning the persisted form.
func (s *Server) GetCircuit(w http.ResponseWriter, r *http.Request) {
	circuit, ok := s.loadCircuit(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, schema.FromCircuit(circuit))
}

// TruthTableResponse pairs the enumerated table with the derived expression
// for each output column.
type TruthTableResponse struct {
	Table       *truthtable.Table `json:"table"`
	Expressions []string          `json:"expressions"`
}

// TruthTable handles GET /circuits/{name}/truthtable.
func (s *Server) TruthTable(w http.ResponseWriter, r *http.Request) {
	circuit, ok := s.loadCircuit(w, r)
	if !ok {
		return
	}

	table := s.Generator.Generate(circuit)
	resp := TruthTableResponse{Table: table, Expressions: []string{}}
	for i := range table.OutputColumns {
		expr, err := truthtable.DeriveExpression(table, i)
		if err != nil {
			http.Error(w, fmt.Sprintf("Expression error: %v", err), http.StatusInternalServerError)
			slog.Error("DeriveExpression failed", "circuit", circuit.Name, "output", i, "error", err)
			return
		}
		resp.Expressions = append(resp.Expressions, expr)
	}
	writeJSON(w, http.StatusOK, resp)
}

// SimulateRequest names switch values to latch before stepping.
type SimulateRequest struct {
	Inputs map[string]bool `json:"inputs"`
	Steps  int             `json:"steps,omitempty"`
}

// SimulateResponse reports each led's state after the run.
type SimulateResponse struct {
	Outputs map[string]bool `json:"outputs"`
}

// Simulate handles POST /circuits/{name}/simulate. Every request runs on a
// fresh load of the circuit, so concurrent simulations never interfere.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Simulate: invalid request body", "error", err)
		return
	}

	circuit, ok := s.loadCircuit(w, r)
	if !ok {
		return
	}

	for name, value := range body.Inputs {
		found := false
		for _, sw := range circuit.Switches() {
			if sw.Name == name {
				sw.SetState(value)
				found = true
				break
			}
		}
		if !found {
			http.Error(w, fmt.Sprintf("No switch named %q", name), http.StatusBadRequest)
			return
		}
	}

	steps := body.Steps
	if steps <= 0 {
		steps = truthtable.DefaultSettleSteps
	}
	for i := 0; i < steps; i++ {
		circuit.Step()
	}

	outputs := make(map[string]bool)
	for _, led := range circuit.Leds() {
		led.Execute()
		outputs[led.Name] = led.IsLit()
	}
	writeJSON(w, http.StatusOK, SimulateResponse{Outputs: outputs})
}

func (s *Server) loadCircuit(w http.ResponseWriter, r *http.Request) (*domain.Circuit, bool) {
	name := chi.URLParam(r, "name")
	circuit, err := s.Repo.LoadCircuit(name)
	if errors.Is(err, domain.ErrCircuitNotFound) {
		http.Error(w, fmt.Sprintf("Circuit %q not found", name), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		slog.Error("LoadCircuit failed", "circuit", name, "error", err)
		return nil, false
	}
	return circuit, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
