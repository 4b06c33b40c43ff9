package redis

import (
	"context"

	"github.com/openlake/socialnotify/internal/subscription"
)

// SaveSubscription implements the subscription.SubscriptionStorage interface.
//
// The token is stored as a field of the account's channel hash, so saving
// the same subscriber again overwrites its previous token.
func (c *client) SaveSubscription(ctx context.Context, sub subscription.Subscription) error {
	key := subscriptionChannelKey(sub.AccountID)
	return c.conn.HSet(ctx, key, sub.SubscriberID, sub.Token).Err()
}

// DeleteSubscription implements the subscription.SubscriptionStorage
// interface. Deleting an absent subscriber is a no-op.
func (c *client) DeleteSubscription(ctx context.Context, ref subscription.SubscriptionRef) error {
	key := subscriptionChannelKey(ref.AccountID)
	return c.conn.HDel(ctx, key, ref.SubscriberID).Err()
}

// Compile-time assertion that client satisfies the SubscriptionStorage interface.
var _ subscription.SubscriptionStorage = (*client)(nil)
