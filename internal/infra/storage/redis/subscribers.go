package redis

import (
	"context"
	"fmt"

	"github.com/openlake/socialnotify/internal/notifywatch"
)

// subscriptionsKeyPrefix namespaces all subscription channel hashes.
const subscriptionsKeyPrefix = "subscriptions"

// subscriptionChannelKey returns the Redis key of the hash holding an
// account's subscribers.
//
// Format: "subscriptions:channels:{accountID}". Each hash field is a
// subscriber id, each value that subscriber's push token.
func subscriptionChannelKey(accountID string) string {
	return fmt.Sprintf("%s:channels:%s", subscriptionsKeyPrefix, accountID)
}

// Subscribers implements the notifywatch.SubscriberRegistry interface.
//
// It loads the full subscriber hash for the account. Redis reports a missing
// key as an empty hash, so an empty result maps to
// notifywatch.ErrSubscribersNotFound.
func (c *client) Subscribers(ctx context.Context, accountID string) (map[string]string, error) {
	key := subscriptionChannelKey(accountID)

	subscribers, err := c.conn.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	if len(subscribers) == 0 {
		return nil, notifywatch.ErrSubscribersNotFound
	}

	return subscribers, nil
}

// Compile-time assertion that client satisfies the SubscriberRegistry interface.
var _ notifywatch.SubscriberRegistry = (*client)(nil)
