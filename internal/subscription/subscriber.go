package subscription

import (
	"context"

	"github.com/openlake/socialnotify/internal/pkg/validator"
)

// Subscription is one subscriber's push registration for an account's
// notification channel. All fields are required and validated before
// persistence.
type Subscription struct {
	AccountID    string `validate:"required"` // Account whose notifications are subscribed to
	SubscriberID string `validate:"required"` // Opaque identifier of the subscribing device/user
	Token        string `validate:"required"` // Push delivery token
}

// SubscriptionRef identifies an existing registration without its token,
// which removal does not need.
type SubscriptionRef struct {
	AccountID    string `validate:"required"`
	SubscriberID string `validate:"required"`
}

// SubscriptionStorage persists subscriber tokens keyed by account.
//
// The notification dispatcher reads the same records through its own
// read-only registry interface; this interface is the write side used by the
// admin surface.
type SubscriptionStorage interface {
	// SaveSubscription registers (or overwrites) the subscriber's token
	// under the account's channel. Safe to call repeatedly.
	SaveSubscription(ctx context.Context, sub Subscription) error

	// DeleteSubscription removes the subscriber from the account's channel.
	// Removing an absent subscriber is not an error.
	DeleteSubscription(ctx context.Context, ref SubscriptionRef) error
}

// buildSubscription constructs and validates a Subscription.
func buildSubscription(accountID, subscriberID, token string) (Subscription, error) {
	sub := Subscription{
		AccountID:    accountID,
		SubscriberID: subscriberID,
		Token:        token,
	}

	return sub, validator.Validate(sub)
}

// buildSubscriptionRef constructs and validates a SubscriptionRef.
func buildSubscriptionRef(accountID, subscriberID string) (SubscriptionRef, error) {
	ref := SubscriptionRef{
		AccountID:    accountID,
		SubscriberID: subscriberID,
	}

	return ref, validator.Validate(ref)
}

// Subscribe registers a subscriber token for the account's channel.
func (s *service) Subscribe(ctx context.Context, accountID, subscriberID, token string) error {
	sub, err := buildSubscription(accountID, subscriberID, token)
	if err != nil {
		return err
	}

	return s.subscriptionStorage.SaveSubscription(ctx, sub)
}

// Unsubscribe removes a subscriber from the account's channel.
func (s *service) Unsubscribe(ctx context.Context, accountID, subscriberID string) error {
	ref, err := buildSubscriptionRef(accountID, subscriberID)
	if err != nil {
		return err
	}

	return s.subscriptionStorage.DeleteSubscription(ctx, ref)
}
