package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the circuits in the library",
	Run: func(cmd *cobra.Command, args []string) {
		wb, err := newWorkbench(cmd)
		if err != nil {
			fmt.Printf("Error initializing breadboard: %v\n", err)
			os.Exit(1)
		}

		names, err := wb.Circuits()
		if err != nil {
			fmt.Printf("Error listing circuits: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
