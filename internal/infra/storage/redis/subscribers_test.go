package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionChannelKey(t *testing.T) {
	t.Run("namespaces the account under the subscriptions prefix", func(t *testing.T) {
		assert.Equal(t, "subscriptions:channels:alice.near", subscriptionChannelKey("alice.near"))
	})

	t.Run("keys differ per account", func(t *testing.T) {
		assert.NotEqual(t, subscriptionChannelKey("alice.near"), subscriptionChannelKey("bob.near"))
	})
}
