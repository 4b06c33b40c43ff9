package notifywatch

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlake/socialnotify/internal/lakestream"
)

func notifyCallArgs(t *testing.T, executor, notify string) string {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"data": map[string]any{
			executor: map[string]any{
				"index": map[string]any{
					"notify": notify,
				},
			},
		},
	})
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(raw)
}

func functionCallReceipt(receiptID, receiverID, args string) lakestream.ReceiptExecutionOutcome {
	return lakestream.ReceiptExecutionOutcome{
		Receipt: lakestream.Receipt{
			ReceiptID:  receiptID,
			ReceiverID: receiverID,
			Receipt: lakestream.ReceiptBody{
				Action: &lakestream.ActionReceipt{
					Actions: []lakestream.Action{
						{FunctionCall: &lakestream.FunctionCall{
							MethodName: "set",
							Args:       args,
						}},
					},
				},
			},
		},
		ExecutionOutcome: lakestream.ExecutionOutcome{
			ID: receiptID,
			Outcome: lakestream.Outcome{
				ReceiptIDs: []string{receiptID + "-next-1", receiptID + "-next-2"},
			},
		},
	}
}

func TestRelevantOutcomes(t *testing.T) {
	followNotify := `{"key": "alice.near", "value": {"type": "follow"}}`

	t.Run("keeps social contract calls that compose a notification", func(t *testing.T) {
		msg := lakestream.StreamerMessage{
			Shards: []lakestream.Shard{{
				ReceiptExecutionOutcomes: []lakestream.ReceiptExecutionOutcome{
					functionCallReceipt("r1", SocialContractID, notifyCallArgs(t, "bob.near", followNotify)),
				},
			}},
		}

		outcomes := RelevantOutcomes(msg)

		require.Len(t, outcomes, 1)
		assert.Equal(t, "r1", outcomes[0].Receipt.ID)
		assert.Equal(t, SocialContractID, outcomes[0].Receipt.ReceiverID)
		assert.Equal(t, "alice.near", outcomes[0].TargetAccountID)
		assert.Equal(t, "set", outcomes[0].MethodName)
		assert.Equal(t, "bob.near follow alice.near", outcomes[0].Notification.Body)
	})

	t.Run("derives a single outcome per receipt regardless of follow-up receipts", func(t *testing.T) {
		msg := lakestream.StreamerMessage{
			Shards: []lakestream.Shard{{
				ReceiptExecutionOutcomes: []lakestream.ReceiptExecutionOutcome{
					functionCallReceipt("r1", SocialContractID, notifyCallArgs(t, "bob.near", followNotify)),
				},
			}},
		}

		outcomes := RelevantOutcomes(msg)

		assert.Len(t, outcomes, 1)
	})

	t.Run("ignores receipts addressed to other contracts", func(t *testing.T) {
		msg := lakestream.StreamerMessage{
			Shards: []lakestream.Shard{{
				ReceiptExecutionOutcomes: []lakestream.ReceiptExecutionOutcome{
					functionCallReceipt("r1", "wrap.near", notifyCallArgs(t, "bob.near", followNotify)),
				},
			}},
		}

		assert.Empty(t, RelevantOutcomes(msg))
	})

	t.Run("ignores receipts without a function call action", func(t *testing.T) {
		msg := lakestream.StreamerMessage{
			Shards: []lakestream.Shard{{
				ReceiptExecutionOutcomes: []lakestream.ReceiptExecutionOutcome{
					{
						Receipt: lakestream.Receipt{
							ReceiptID:  "r1",
							ReceiverID: SocialContractID,
						},
					},
					{
						Receipt: lakestream.Receipt{
							ReceiptID:  "r2",
							ReceiverID: SocialContractID,
							Receipt: lakestream.ReceiptBody{
								Action: &lakestream.ActionReceipt{
									Actions: []lakestream.Action{{}},
								},
							},
						},
					},
				},
			}},
		}

		assert.Empty(t, RelevantOutcomes(msg))
	})

	t.Run("ignores calls whose arguments carry no notify event", func(t *testing.T) {
		raw, err := json.Marshal(map[string]any{"data": map[string]any{}})
		require.NoError(t, err)

		msg := lakestream.StreamerMessage{
			Shards: []lakestream.Shard{{
				ReceiptExecutionOutcomes: []lakestream.ReceiptExecutionOutcome{
					functionCallReceipt("r1", SocialContractID, base64.StdEncoding.EncodeToString(raw)),
				},
			}},
		}

		assert.Empty(t, RelevantOutcomes(msg))
	})

	t.Run("preserves block order across shards", func(t *testing.T) {
		msg := lakestream.StreamerMessage{
			Shards: []lakestream.Shard{
				{
					ShardID: 0,
					ReceiptExecutionOutcomes: []lakestream.ReceiptExecutionOutcome{
						functionCallReceipt("r1", SocialContractID, notifyCallArgs(t, "bob.near", followNotify)),
					},
				},
				{
					ShardID: 1,
					ReceiptExecutionOutcomes: []lakestream.ReceiptExecutionOutcome{
						functionCallReceipt("r2", SocialContractID, notifyCallArgs(t, "carol.near", followNotify)),
					},
				},
			},
		}

		outcomes := RelevantOutcomes(msg)

		require.Len(t, outcomes, 2)
		assert.Equal(t, "r1", outcomes[0].Receipt.ID)
		assert.Equal(t, "r2", outcomes[1].Receipt.ID)
	})
}
