package main

import (
	"fmt"
	"os"

	"github.com/aretw0/breadboard/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// tableCmd represents the table command
var tableCmd = &cobra.Command{
	Use:   "table <circuit>",
	Short: "Print a circuit's truth table and boolean expressions",
	Long:  `Enumerates every input combination of the circuit's switches and prints the resulting led states, together with the derived sum-of-products expression per led.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wb, err := newWorkbench(cmd)
		if err != nil {
			fmt.Printf("Error initializing breadboard: %v\n", err)
			os.Exit(1)
		}

		table, err := wb.TruthTable(args[0])
		if err != nil {
			fmt.Printf("Error generating truth table: %v\n", err)
			os.Exit(1)
		}

		md := tui.TruthTableMarkdown(args[0], table)
		render := tui.NewRenderer()
		out, err := render(md)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
