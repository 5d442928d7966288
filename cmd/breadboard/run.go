package main

import (
	"fmt"
	"os"

	"github.com/aretw0/breadboard/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [circuit]",
	Short: "Put a circuit on the bench and drive it interactively",
	Long:  `Loads a circuit from the library and starts the interactive workbench: flip switches, step the simulation, inspect the truth table.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptionsFromFlags(cmd, args)
		if opts.Circuit == "" {
			fmt.Println("Error: a circuit name is required (breadboard run <circuit>).")
			os.Exit(1)
		}

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runOptionsFromFlags(cmd *cobra.Command, args []string) cli.RunOptions {
	dir, _ := cmd.Flags().GetString("dir")
	redisAddr, _ := cmd.Flags().GetString("redis")
	debug, _ := cmd.Flags().GetBool("debug")
	watchMode, _ := cmd.Flags().GetBool("watch")
	quiet, _ := cmd.Flags().GetBool("quiet")

	circuit := ""
	if len(args) > 0 {
		circuit = args[0]
	}

	return cli.RunOptions{
		Dir:       dir,
		Circuit:   circuit,
		RedisAddr: redisAddr,
		Watch:     watchMode,
		Debug:     debug,
		Quiet:     quiet,
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("watch", "w", false, "Re-render the circuit on library changes instead of prompting")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
