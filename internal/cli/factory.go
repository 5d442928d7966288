package cli

import (
	"log/slog"

	"github.com/aretw0/breadboard"
	redisAdapter "github.com/aretw0/breadboard/pkg/adapters/redis"
)

// createWorkbench initializes a Workbench with standard CLI conventions:
// a Loam library in the chosen directory, or a Redis store when a Redis
// address is given.
func createWorkbench(opts RunOptions, logger *slog.Logger) (*breadboard.Workbench, error) {
	wbOpts := []breadboard.Option{
		breadboard.WithLogger(logger),
	}
	if opts.RedisAddr != "" {
		wbOpts = append(wbOpts, breadboard.WithRepository(redisAdapter.New(opts.RedisAddr)))
	}
	return breadboard.Open(opts.Dir, wbOpts...)
}
