package main

import (
	"log/slog"

	"github.com/aretw0/breadboard"
	redisAdapter "github.com/aretw0/breadboard/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

// newWorkbench builds a Workbench from the persistent flags shared by every
// command: --dir selects a Loam library, --redis overrides it with a Redis
// store.
func newWorkbench(cmd *cobra.Command, extra ...breadboard.Option) (*breadboard.Workbench, error) {
	dir, _ := cmd.Flags().GetString("dir")
	redisAddr, _ := cmd.Flags().GetString("redis")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := append([]breadboard.Option{}, extra...)
	if debug {
		opts = append(opts, breadboard.WithLogger(slog.Default()))
	}
	if redisAddr != "" {
		opts = append(opts, breadboard.WithRepository(redisAdapter.New(redisAddr)))
	}
	return breadboard.Open(dir, opts...)
}
