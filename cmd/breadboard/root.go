package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "breadboard",
	Short: "Breadboard is a digital logic workbench",
	Long:  `Breadboard simulates digital logic circuits described as simple Markdown files: switches, gates, leds and nested sub-circuits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the circuit library")
	rootCmd.PersistentFlags().String("redis", "", "Redis address to use as the circuit store instead of the directory")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
