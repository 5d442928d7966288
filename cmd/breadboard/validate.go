package main

import (
	"context"
	"fmt"
	"os"

	loamAdapter "github.com/aretw0/breadboard/pkg/adapters/loam"
	"github.com/aretw0/breadboard/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the circuit library for defects",
	Long:  `Reads every circuit document in the library and reports duplicate ids, unknown component kinds, dangling wires, contended inputs and missing sub-circuit references.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Library is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}

	lib, err := loamAdapter.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}

	docs, err := lib.Documents(context.Background())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no circuit documents found in %s", dir)
	}

	var failed bool
	for _, doc := range docs {
		if err := schema.Validate(doc); err != nil {
			failed = true
			fmt.Printf("%s:\n", doc.Name)
			for _, issue := range schema.ValidationErrors(err) {
				fmt.Printf("  - %v\n", issue)
			}
		}
	}
	if failed {
		return fmt.Errorf("one or more circuits have defects")
	}
	return nil
}
