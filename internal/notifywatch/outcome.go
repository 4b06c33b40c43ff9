package notifywatch

import (
	"github.com/openlake/socialnotify/internal/lakestream"
)

// SocialContractID is the account id of the on-chain social contract whose
// calls are inspected for notify documents. Receipts addressed to any other
// account are ignored, regardless of their contents.
const SocialContractID = "social.near"

// ReceiptRef identifies the receipt an outcome was derived from.
type ReceiptRef struct {
	ID         string
	ReceiverID string
}

// RelevantOutcome is one qualifying receipt execution outcome: a call to the
// social contract whose arguments produced a composed notification. It lives
// for the duration of a single dispatch and is then discarded.
type RelevantOutcome struct {
	Receipt         ReceiptRef
	TargetAccountID string
	MethodName      string
	Notification    ComposedNotification
}

// RelevantOutcomes scans every receipt execution outcome in the block,
// restricts to calls addressed to the social contract, and keeps only those
// whose first function-call action yields a composed notification. Block
// order is preserved.
//
// The derived event is computed exactly once per receipt, independent of how
// many follow-up receipt ids the execution produced.
func RelevantOutcomes(msg lakestream.StreamerMessage) []RelevantOutcome {
	var relevant []RelevantOutcome
	for _, outcome := range msg.ReceiptExecutionOutcomes() {
		if outcome.Receipt.ReceiverID != SocialContractID {
			continue
		}

		call := firstFunctionCall(outcome.Receipt)
		if call == nil {
			continue
		}

		event := ExtractNotifyEvent(DecodeArgs(call.Args))
		notification := ComposeNotification(event)
		if notification == nil {
			continue
		}

		relevant = append(relevant, RelevantOutcome{
			Receipt: ReceiptRef{
				ID:         outcome.Receipt.ReceiptID,
				ReceiverID: outcome.Receipt.ReceiverID,
			},
			TargetAccountID: event.Notification.Key,
			MethodName:      call.MethodName,
			Notification:    *notification,
		})
	}

	return relevant
}

// firstFunctionCall returns the first function-call action of the receipt,
// or nil when the receipt carries none. Receipts with several function-call
// actions still yield a single derived event.
func firstFunctionCall(receipt lakestream.Receipt) *lakestream.FunctionCall {
	if receipt.Receipt.Action == nil {
		return nil
	}

	for _, action := range receipt.Receipt.Action.Actions {
		if action.FunctionCall != nil {
			return action.FunctionCall
		}
	}

	return nil
}
