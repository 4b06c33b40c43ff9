// Package subscription manages the push-subscriber registry's write side:
// registering and removing subscriber tokens for an account's notification
// channel. The notification pipeline itself only ever reads the registry.
package subscription

import "context"

// Service registers and unregisters push subscribers.
type Service interface {
	// Subscribe registers a subscriber's push token for the given account's
	// notification channel.
	//
	// Returns an error if validation fails or the registration cannot be
	// persisted.
	Subscribe(ctx context.Context, accountID, subscriberID, token string) error

	// Unsubscribe removes a subscriber from the given account's notification
	// channel.
	//
	// Returns an error if validation fails or the removal cannot be
	// persisted.
	Unsubscribe(ctx context.Context, accountID, subscriberID string) error
}

// service is the concrete implementation of the Service interface. It
// delegates persistence to the configured SubscriptionStorage.
type service struct {
	subscriptionStorage SubscriptionStorage
}

var _ Service = (*service)(nil)

// New creates a subscription service backed by the given storage.
func New(storage SubscriptionStorage) *service {
	return &service{
		subscriptionStorage: storage,
	}
}
