// Package notifywatch implements the notification-derivation pipeline: it
// inspects each block's receipt execution outcomes for social contract calls
// carrying a notify document, composes the human-readable notification text,
// and fans the result out to the target account's push subscribers.
package notifywatch

import (
	"context"

	"github.com/openlake/socialnotify/internal/lakestream"
	"github.com/openlake/socialnotify/internal/pkg/logger"

	"github.com/google/uuid"
)

// defaultImageURL is attached to every push notification unless overridden.
const defaultImageURL = "https://near.social/assets/logo.png"

// Service is the per-block entry point of the notification pipeline.
type Service interface {
	// HandleStreamerMessage processes one block: it filters the block's
	// outcomes down to qualifying social notifications and launches one
	// dispatch per outcome.
	//
	// Dispatches are not awaited. Each runs in its own supervised goroutine
	// so a slow or failing dispatch never blocks the stream or its sibling
	// outcomes; failures are logged and dropped.
	HandleStreamerMessage(ctx context.Context, msg lakestream.StreamerMessage)
}

type service struct {
	subscriberRegistry SubscriberRegistry
	pushSender         PushSender

	imageURL string
}

var _ Service = (*service)(nil)

func (s *service) HandleStreamerMessage(ctx context.Context, msg lakestream.StreamerMessage) {
	for _, outcome := range RelevantOutcomes(msg) {
		logger.Info(ctx, "social notification detected",
			"block.height", msg.Block.Header.Height,
			"receipt.id", outcome.Receipt.ID,
			"contract.method", outcome.MethodName,
			"notification.target", outcome.TargetAccountID,
			"notification.body", outcome.Notification.Body,
		)

		go s.superviseDispatch(ctx, outcome)
	}
}

// superviseDispatch runs one outcome's dispatch inside an error boundary:
// errors and panics are captured and logged so a bad outcome cannot take the
// process down or affect siblings.
func (s *service) superviseDispatch(ctx context.Context, outcome RelevantOutcome) {
	dispatchID := uuid.Must(uuid.NewV7()).String()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "notification dispatch panicked",
				"dispatch.id", dispatchID,
				"receipt.id", outcome.Receipt.ID,
				"panic", r,
			)
		}
	}()

	sent, err := s.Dispatch(ctx, outcome)
	if err != nil {
		logger.Error(ctx, "notification dispatch failed",
			"dispatch.id", dispatchID,
			"receipt.id", outcome.Receipt.ID,
			"notification.target", outcome.TargetAccountID,
			"notifications.sent", sent,
			"error", err,
		)
		return
	}

	logger.Debug(ctx, "notification dispatch finished",
		"dispatch.id", dispatchID,
		"receipt.id", outcome.Receipt.ID,
		"notification.target", outcome.TargetAccountID,
		"notifications.sent", sent,
	)
}

type config struct {
	imageURL string
}

// Option customizes the notifywatch service.
type Option func(*config)

// WithNotificationImageURL overrides the image attached to outgoing push
// notifications.
func WithNotificationImageURL(url string) Option {
	return func(c *config) {
		c.imageURL = url
	}
}

// New creates the notification pipeline service on top of the given
// subscriber registry and push sender.
func New(registry SubscriberRegistry, sender PushSender, opts ...Option) *service {
	cfg := config{
		imageURL: defaultImageURL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		subscriberRegistry: registry,
		pushSender:         sender,
		imageURL:           cfg.imageURL,
	}
}
