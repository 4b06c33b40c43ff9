package notifywatch

import (
	"fmt"
	"strings"
)

// EventType discriminates the notify event kinds the composer understands.
// Anything outside this set falls back to a generic notification body.
type EventType string

const (
	EventFollow   EventType = "follow"
	EventUnfollow EventType = "unfollow"
	EventPoke     EventType = "poke"
	EventLike     EventType = "like"
	EventComment  EventType = "comment"
	EventMention  EventType = "mention"
	EventRepost   EventType = "repost"

	EventDevGovLike    EventType = "devgovgigs/like"
	EventDevGovReply   EventType = "devgovgigs/reply"
	EventDevGovEdit    EventType = "devgovgigs/edit"
	EventDevGovMention EventType = "devgovgigs/mention"
)

// devGovPrefix namespaces DevHub events.
const devGovPrefix = "devgovgigs/"

// fallbackBody is emitted for event types the composer does not recognize.
const fallbackBody = "Near Social targetId Notification"

// ComposedNotification is the (title, body) pair delivered to subscribers.
// The title is always the empty string: titles are suppressed on delivery,
// and the capitalized event type is computed only as a gate (see
// ComposeNotification).
type ComposedNotification struct {
	Title string
	Body  string
}

// ComposeNotification maps a normalized event to its notification text.
//
// It is a pure function: the same event always yields the same result. A nil
// result means there is nothing to notify, which is a legitimate outcome and
// not an error.
//
// A notification is produced only when both the computed title (the
// capitalized event type) and the body are non-empty; the emitted title is
// nevertheless always "".
func ComposeNotification(ev *NormalizedEvent) *ComposedNotification {
	if ev == nil {
		return nil
	}

	var (
		value    = ev.Notification.Value
		executor = ev.Executor
		target   = ev.Notification.Key
	)

	// With no payload, executor, or target there is nothing to compose.
	if value == nil && executor == "" && target == "" {
		return nil
	}

	if value == nil {
		return nil
	}

	title := capitalize(string(value.Type))
	body := composeBody(value, executor, target)

	if title == "" || body == "" {
		return nil
	}

	return &ComposedNotification{
		Title: "",
		Body:  body,
	}
}

// composeBody derives the notification body for the event's type. Path
// comparisons are exact, case-sensitive string matches against the target
// account's conventional item paths.
func composeBody(value *EventValue, executor, target string) string {
	path := value.path()

	switch {
	case value.Type == EventFollow || value.Type == EventUnfollow:
		return fmt.Sprintf("%s %s %s", executor, value.Type, target)

	case value.Type == EventPoke:
		return fmt.Sprintf("%s poke %s", executor, target)

	case value.Type == EventLike:
		body := executor + " like"
		switch path {
		case target + "/post/main":
			body += " " + target + " post"
		case target + "/post/comment":
			body += " " + target + " comment"
		case target + "/post/insta":
			body += " " + target + " insta"
		default:
			body += " " + pathPart(path, 0) + " " + pathPart(path, 1)
		}
		return body

	case value.Type == EventComment:
		body := executor + " replied to " + target
		if path == target+"/post/main" || pathPart(path, 1) == "post" {
			body += " post"
		} else {
			body += " ???"
		}
		return body

	case strings.HasPrefix(string(value.Type), devGovPrefix):
		switch value.Type {
		case EventDevGovLike:
			return "Liked " + target
		case EventDevGovReply:
			return "Replied to " + target
		case EventDevGovEdit:
			return "Edited " + target
		case EventDevGovMention:
			return "Mentioned " + target + " in their DevHub post"
		default:
			// Unrecognized DevHub subtype; degenerate but still delivered.
			return "???"
		}

	case value.Type == EventMention:
		body := executor + " mentioned " + target + " in their"
		switch path {
		case target + "/post/main":
			body += " post"
		case target + "/post/comment":
			body += " comment"
		default:
			body += " ???"
		}
		return body

	case value.Type == EventRepost:
		body := executor + " reposted " + target + " in their"
		if path == target+"/post/main" {
			body += " post"
		} else {
			body += " ???"
		}
		return body

	default:
		return fallbackBody
	}
}

// pathPart returns the i-th "/"-delimited segment of path, or "" when the
// segment does not exist.
func pathPart(path string, i int) string {
	parts := strings.Split(path, "/")
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// capitalize upper-cases the first byte of s, mirroring the way the event
// type is turned into a candidate title.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
