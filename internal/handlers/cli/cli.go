package cli

import (
	"context"
	"os"

	"github.com/openlake/socialnotify/internal/notifyproc"
	"github.com/openlake/socialnotify/internal/subscription"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the socialnotify CLI application.
//
// It registers all available commands:
//
//   - `start`: Runs the full notification pipeline.
//   - `subscribe`: Registers a push subscriber for an account's channel.
//   - `unsubscribe`: Removes a push subscriber from an account's channel.
//
// Parameters:
//   - ctx: Context controlling the lifecycle of the CLI application.
//   - sub: The subscription service implementation used by subscriber commands.
//   - np: The notifyproc service implementation used by the pipeline command.
//   - healthAddr: Listen address of the liveness endpoint started with the pipeline.
func Run(ctx context.Context, sub subscription.Service, np notifyproc.Service, healthAddr string) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "socialnotify",
		Description:           "Command-line interface for managing and running the NEAR Social notification pipeline.",
		Usage:                 "socialnotify [command] [flags]",
		Commands: []*cli.Command{
			startPipelineCommand(np, healthAddr),
			subscribeCommand(sub),
			unsubscribeCommand(sub),
		},
	}

	return app.Run(ctx, os.Args)
}
