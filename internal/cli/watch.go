package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/breadboard"
	"github.com/aretw0/breadboard/internal/presentation/tui"
	"github.com/aretw0/breadboard/pkg/ports"
	"github.com/aretw0/breadboard/pkg/truthtable"
)

// RunWatch runs the workbench in development mode, re-rendering the circuit's
// truth table whenever the library changes on disk. It returns when the
// repository cannot watch, or on SIGINT/SIGTERM.
func RunWatch(opts RunOptions) error {
	logger := createLogger(opts.Debug)
	if !opts.Quiet {
		tui.PrintBanner(breadboard.Version)
	}

	wb, err := createWorkbench(opts, logger)
	if err != nil {
		return err
	}
	watchable, ok := wb.Repository().(ports.Watchable)
	if !ok {
		return fmt.Errorf("repository for %q does not support watching", opts.Dir)
	}

	logger.Info("Starting watcher", "dir", opts.Dir, "circuit", opts.Circuit)
	printSystemMessage("Watching '%s'. Ctrl+C to stop.", opts.Circuit)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	render := tui.NewRenderer()
	for {
		if !runWatchIteration(sigCtx, wb, watchable, opts, render) {
			break
		}
		logger.Info("Watcher restarting")
	}

	if sig := sigCtx.Signal(); sig != nil {
		logger.Info("Stopping watcher", "signal", sig)
	}
	return nil
}

// runWatchIteration renders the circuit once and blocks until the next change
// event. It returns false when the watcher should stop.
func runWatchIteration(parentCtx *SignalContext, wb *breadboard.Workbench, watchable ports.Watchable, opts RunOptions, render func(string) (string, error)) bool {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	logger := createLogger(opts.Debug)

	watchCh, err := watchable.Watch(ctx)
	if err != nil {
		logger.Error("Watch failed", "err", err)
		return false
	}

	if err := renderCircuit(wb, opts.Circuit, render); err != nil {
		// A broken circuit is the normal state mid-edit; report and wait for
		// the next save.
		logger.Error("Circuit load failed", "err", err)
		printSystemMessage("Cannot load '%s': %v", opts.Circuit, err)
	}
	printSystemMessage("Waiting for changes...")

	select {
	case <-parentCtx.Done():
		return false
	case event, ok := <-watchCh:
		if !ok {
			return false
		}
		logger.Info("Change detected, reloading", "event", event)
		if !opts.Debug {
			fmt.Fprintln(os.Stdout)
		}
		printSystemMessage("Change detected in '%s'.", event)
		// Editors write in bursts; let the file settle before re-reading.
		time.Sleep(100 * time.Millisecond)
		return true
	}
}

func renderCircuit(wb *breadboard.Workbench, name string, render func(string) (string, error)) error {
	circuit, err := wb.Circuit(name)
	if err != nil {
		return err
	}

	table := truthtable.NewGenerator().Generate(circuit)
	md := tui.TruthTableMarkdown(circuit.Name, table)
	rendered, err := render(md)
	if err != nil {
		fmt.Print(md)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
