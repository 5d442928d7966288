package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <circuit>",
	Short: "Export the circuit as a Mermaid diagram",
	Long:  `Loads a circuit and outputs a Mermaid flowchart (graph LR) of its components and wires, with live signal levels highlighted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wb, err := newWorkbench(cmd)
		if err != nil {
			fmt.Printf("Error initializing breadboard: %v\n", err)
			os.Exit(1)
		}

		output, err := wb.Mermaid(args[0])
		if err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
