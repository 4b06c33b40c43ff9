package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/openlake/socialnotify/internal/handlers/health"
	"github.com/openlake/socialnotify/internal/notifyproc"

	"github.com/urfave/cli/v3"
)

// startPipelineCommand returns a CLI command that runs the full notification
// pipeline: block-stream ingestion, notification derivation, and push
// fan-out, plus the liveness endpoint.
//
// Usage example:
//
//	socialnotify start
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func startPipelineCommand(np notifyproc.Service, healthAddr string) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the notification pipeline including block ingestion and push fan-out.",
		Usage:       "Initializes and runs the full pipeline. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			health.Serve(ctx, healthAddr)

			if err := np.Start(ctx); err != nil {
				return err
			}
			defer np.Close()

			<-quit
			return nil
		},
	}
}
