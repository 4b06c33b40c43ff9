package cli

import (
	"context"

	"github.com/openlake/socialnotify/internal/subscription"

	"github.com/urfave/cli/v3"
)

// subscribeCommand returns a CLI command that registers a push subscriber
// for an account's notification channel.
//
// Usage example:
//
//	socialnotify subscribe --account alice.near --subscriber device-42 --token fcm-token...
func subscribeCommand(sub subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "subscribe",
		Description: "Register a push subscriber for an account's notification channel.",
		Usage:       "Registers a subscriber token. Must provide account, subscriber, and token.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "account",
				Usage:    "Account whose notifications are subscribed to (e.g., alice.near)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "subscriber",
				Usage:    "Identifier of the subscribing device or user",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "token",
				Usage:    "Push delivery token to register",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				account    = c.String("account")
				subscriber = c.String("subscriber")
				token      = c.String("token")
			)

			return sub.Subscribe(ctx, account, subscriber, token)
		},
	}
}

// unsubscribeCommand returns a CLI command that removes a push subscriber
// from an account's notification channel.
//
// Usage example:
//
//	socialnotify unsubscribe --account alice.near --subscriber device-42
func unsubscribeCommand(sub subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "unsubscribe",
		Description: "Remove a push subscriber from an account's notification channel.",
		Usage:       "Stops notifications for a subscriber. Must provide both account and subscriber.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "account",
				Usage:    "Account whose notifications are subscribed to (e.g., alice.near)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "subscriber",
				Usage:    "Identifier of the subscribing device or user",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				account    = c.String("account")
				subscriber = c.String("subscriber")
			)

			return sub.Unsubscribe(ctx, account, subscriber)
		},
	}
}
