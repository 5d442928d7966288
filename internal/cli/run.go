package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/breadboard"
	"github.com/aretw0/breadboard/internal/presentation/graph"
	"github.com/aretw0/breadboard/internal/presentation/tui"
	"github.com/aretw0/breadboard/internal/sim"
	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/truthtable"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Dir       string
	Circuit   string
	RedisAddr string
	Watch     bool
	Debug     bool
	Quiet     bool
}

// Execute handles the 'run' command logic, dispatching to Watch mode when
// requested.
func Execute(opts RunOptions) error {
	if opts.Watch {
		return RunWatch(opts)
	}
	return RunSession(opts)
}

// RunSession loads the circuit and drives the interactive loop on stdin.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)
	wb, err := createWorkbench(opts, logger)
	if err != nil {
		return err
	}

	circuit, err := wb.Circuit(opts.Circuit)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		tui.PrintBanner(breadboard.Version)
		printSystemMessage("Circuit '%s' on the bench. Type 'help' for commands.", opts.Circuit)
	}
	return runLoop(circuit, os.Stdin, os.Stdout)
}

// runLoop is the interactive command loop. It owns a simulation context for
// the circuit and runs until quit or EOF.
func runLoop(circuit *domain.Circuit, in io.Reader, out io.Writer) error {
	simCtx := sim.New(circuit)
	simCtx.Reset()

	render := tui.NewRenderer()
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "status: %s\n", tui.StatusLine(circuit))
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			fmt.Fprint(out, "> ")
			continue
		}

		switch fields[0] {
		case "quit", "exit", "q":
			return nil

		case "help":
			fmt.Fprint(out, helpText)

		case "set":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: set <switch> <0|1>")
				break
			}
			sw := switchByName(circuit, fields[1])
			if sw == nil {
				fmt.Fprintf(out, "no switch named %q\n", fields[1])
				break
			}
			sw.SetState(fields[2] == "1" || fields[2] == "true" || fields[2] == "on")
			fmt.Fprintf(out, "status: %s\n", tui.StatusLine(circuit))

		case "toggle":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: toggle <switch>")
				break
			}
			sw := switchByName(circuit, fields[1])
			if sw == nil {
				fmt.Fprintf(out, "no switch named %q\n", fields[1])
				break
			}
			sw.Toggle()
			fmt.Fprintf(out, "status: %s\n", tui.StatusLine(circuit))

		case "step":
			n := 1
			if len(fields) == 2 {
				parsed, err := strconv.Atoi(fields[1])
				if err != nil || parsed < 1 {
					fmt.Fprintln(out, "usage: step [n]")
					break
				}
				n = parsed
			}
			for i := 0; i < n; i++ {
				simCtx.Step()
			}
			fmt.Fprintf(out, "status: %s\n", tui.StatusLine(circuit))

		case "settle":
			for i := 0; i < truthtable.DefaultSettleSteps; i++ {
				simCtx.Step()
			}
			fmt.Fprintf(out, "status: %s\n", tui.StatusLine(circuit))

		case "reset":
			simCtx.Reset()
			fmt.Fprintf(out, "status: %s\n", tui.StatusLine(circuit))

		case "status":
			fmt.Fprintf(out, "status: %s\n", tui.StatusLine(circuit))

		case "table":
			table := truthtable.NewGenerator().Generate(circuit)
			md := tui.TruthTableMarkdown(circuit.Name, table)
			rendered, err := render(md)
			if err != nil {
				fmt.Fprint(out, md)
				break
			}
			fmt.Fprint(out, rendered)
			// Generation mutates signal state; return to a known point.
			simCtx.Reset()

		case "graph":
			fmt.Fprint(out, graph.GenerateMermaid(circuit))

		default:
			fmt.Fprintf(out, "unknown command %q, try 'help'\n", fields[0])
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func switchByName(circuit *domain.Circuit, name string) *domain.Component {
	for _, sw := range circuit.Switches() {
		if sw.Name == name {
			return sw
		}
	}
	return nil
}

const helpText = `commands:
  set <switch> <0|1>   latch a switch
  toggle <switch>      flip a switch
  step [n]             run n evaluation cycles (default 1)
  settle               run enough cycles for typical circuits
  reset                return to the quiescent state
  status               show switches and leds
  table                print the truth table and expressions
  graph                print the circuit as a Mermaid flowchart
  quit                 leave the bench
`
