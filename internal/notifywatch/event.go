package notifywatch

import (
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// NotifyDocument is the application-level convention the social contract uses
// to embed a targeted notification inside a set call: a JSON5-encoded string
// stored under the `index.notify` key of an account's data document.
type NotifyDocument struct {
	Key   string      `json:"key"`   // Target account the notification is addressed to
	Value *EventValue `json:"value"` // Event payload; may be absent in malformed documents
}

// EventValue is the payload of a notify document.
type EventValue struct {
	Type EventType  `json:"type"` // Discriminator for the event kind
	Item *EventItem `json:"item"` // Optional reference to the item the event concerns
}

// EventItem points at a piece of social data by its "/"-delimited path,
// conventionally accountId/section/subsection.
type EventItem struct {
	Path string `json:"path"`
}

// Path returns the item path, or the empty string when no item is present.
func (v *EventValue) path() string {
	if v.Item == nil {
		return ""
	}
	return v.Item.Path
}

// NormalizedEvent is a notify document paired with the account whose data map
// contained it. Executor is the account performing the action; the document's
// Key names the account on the receiving end.
//
// A NormalizedEvent is only produced when Executor differs from the
// notification key: self-notifications are suppressed at extraction time and
// never re-checked downstream.
type NormalizedEvent struct {
	Executor     string
	Notification NotifyDocument
}

// ExtractNotifyEvent walks the decoded call arguments looking for an embedded
// notify document.
//
// The expected shape is a top-level "data" map keyed by account id, where an
// account's document may carry a JSON5-encoded notify string under
// "index.notify". Entries that fail to parse, lack the expected structure, or
// are self-referential (account id equals the notify key) are skipped
// silently. When several accounts carry a valid notify entry the last one
// visited wins, overwriting earlier matches.
//
// A nil result means "no event", which is the normal outcome for the vast
// majority of calls.
func ExtractNotifyEvent(args map[string]any) *NormalizedEvent {
	data, ok := args["data"].(map[string]any)
	if !ok {
		return nil
	}

	var event *NormalizedEvent
	for accountID, doc := range data {
		raw, ok := notifyEntry(doc)
		if !ok {
			continue
		}

		var notify NotifyDocument
		if err := json5.Unmarshal([]byte(raw), &notify); err != nil {
			continue
		}

		if accountID == notify.Key {
			continue
		}

		event = &NormalizedEvent{
			Executor:     accountID,
			Notification: notify,
		}
	}

	return event
}

// notifyEntry digs the raw notify string out of one account's document,
// reporting false when any level of the structure is missing or mistyped.
func notifyEntry(doc any) (string, bool) {
	account, ok := doc.(map[string]any)
	if !ok {
		return "", false
	}

	index, ok := account["index"].(map[string]any)
	if !ok {
		return "", false
	}

	notify, ok := index["notify"].(string)
	if !ok || notify == "" {
		return "", false
	}

	return notify, true
}
