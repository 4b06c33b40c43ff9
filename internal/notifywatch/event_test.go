package notifywatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notifyArgs(executor, notify string) map[string]any {
	return map[string]any{
		"data": map[string]any{
			executor: map[string]any{
				"index": map[string]any{
					"notify": notify,
				},
			},
		},
	}
}

func TestExtractNotifyEvent(t *testing.T) {
	t.Run("extracts a notify document addressed to another account", func(t *testing.T) {
		args := notifyArgs("bob.near", `{"key": "alice.near", "value": {"type": "follow"}}`)

		event := ExtractNotifyEvent(args)

		require.NotNil(t, event)
		assert.Equal(t, "bob.near", event.Executor)
		assert.Equal(t, "alice.near", event.Notification.Key)
		require.NotNil(t, event.Notification.Value)
		assert.Equal(t, EventFollow, event.Notification.Value.Type)
	})

	t.Run("carries the item path when present", func(t *testing.T) {
		args := notifyArgs("bob.near", `{
			"key": "alice.near",
			"value": {"type": "like", "item": {"path": "alice.near/post/main"}},
		}`)

		event := ExtractNotifyEvent(args)

		require.NotNil(t, event)
		require.NotNil(t, event.Notification.Value)
		require.NotNil(t, event.Notification.Value.Item)
		assert.Equal(t, "alice.near/post/main", event.Notification.Value.Item.Path)
	})

	t.Run("suppresses self notifications", func(t *testing.T) {
		args := notifyArgs("alice.near", `{"key": "alice.near", "value": {"type": "like"}}`)

		assert.Nil(t, ExtractNotifyEvent(args))
	})

	t.Run("returns nil when there is no data map", func(t *testing.T) {
		assert.Nil(t, ExtractNotifyEvent(map[string]any{}))
		assert.Nil(t, ExtractNotifyEvent(map[string]any{"data": "not a map"}))
	})

	t.Run("skips documents without a notify entry", func(t *testing.T) {
		args := map[string]any{
			"data": map[string]any{
				"bob.near": map[string]any{
					"graph": map[string]any{"follow": map[string]any{"alice.near": ""}},
				},
			},
		}

		assert.Nil(t, ExtractNotifyEvent(args))
	})

	t.Run("skips notify entries that fail to parse", func(t *testing.T) {
		args := notifyArgs("bob.near", `{"key": "alice.near"`)

		assert.Nil(t, ExtractNotifyEvent(args))
	})

	t.Run("skips empty notify entries", func(t *testing.T) {
		args := notifyArgs("bob.near", "")

		assert.Nil(t, ExtractNotifyEvent(args))
	})

	t.Run("one valid entry wins over skipped siblings", func(t *testing.T) {
		args := map[string]any{
			"data": map[string]any{
				"alice.near": map[string]any{
					"index": map[string]any{
						"notify": `{"key": "alice.near", "value": {"type": "poke"}}`,
					},
				},
				"bob.near": map[string]any{
					"index": map[string]any{
						"notify": `{"key": "alice.near", "value": {"type": "follow"}}`,
					},
				},
			},
		}

		event := ExtractNotifyEvent(args)

		require.NotNil(t, event)
		assert.Equal(t, "bob.near", event.Executor)
	})

	t.Run("tolerates a missing value", func(t *testing.T) {
		args := notifyArgs("bob.near", `{"key": "alice.near"}`)

		event := ExtractNotifyEvent(args)

		require.NotNil(t, event)
		assert.Nil(t, event.Notification.Value)
	})
}
