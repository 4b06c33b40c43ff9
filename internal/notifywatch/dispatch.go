package notifywatch

import (
	"context"
	"errors"
	"sync"

	"github.com/openlake/socialnotify/internal/pkg/types"
)

// DefaultTargetAccountID is the registry key used when a qualifying outcome
// carries no target account.
const DefaultTargetAccountID = "root.near"

// maxBatchTokens caps how many push tokens a single batch submission carries.
const maxBatchTokens = 500

// ErrSubscribersNotFound is returned by a SubscriberRegistry when no record
// exists for the requested account. The dispatcher treats it as an empty
// subscriber set, not as an error.
var ErrSubscribersNotFound = errors.New("no subscribers found for account")

// SubscriberRegistry is the external lookup of push-subscriber tokens.
// The dispatcher only ever reads from it.
type SubscriberRegistry interface {
	// Subscribers returns the subscriber-id → push-token mapping for the
	// given account, or ErrSubscribersNotFound when the account has no
	// record. Token values may be empty for lapsed subscribers.
	Subscribers(ctx context.Context, accountID string) (map[string]string, error)
}

// PushNotification is the payload shared by every batch of one dispatch.
type PushNotification struct {
	Title    string
	Body     string
	ImageURL string
}

// MessageBatch is at most maxBatchTokens push tokens plus the shared
// notification payload. Batches are transient: built during dispatch, never
// persisted.
type MessageBatch struct {
	Tokens       []string
	Notification PushNotification
}

// PushSender is the external batch push-delivery service. Implementations
// apply platform defaults (default notification sound on Android and APNs).
type PushSender interface {
	// SendBatch submits one batch and reports how many tokens were
	// delivered to successfully. Partial failure within a batch is not an
	// error; only the success count is tracked.
	SendBatch(ctx context.Context, batch MessageBatch) (int, error)
}

// Dispatch resolves the outcome's target account against the subscriber
// registry, partitions the resolved tokens into batches, submits all batches
// concurrently, and returns the summed success count.
//
// A missing registry record and an empty token set are both quiet no-ops.
// Delivery is best effort: failed batches are reported through the combined
// error but are never retried, and tokens that fail inside an otherwise
// successful batch are simply absent from the count.
func (s *service) Dispatch(ctx context.Context, outcome RelevantOutcome) (int, error) {
	target := outcome.TargetAccountID
	if target == "" {
		target = DefaultTargetAccountID
	}

	subscribers, err := s.subscriberRegistry.Subscribers(ctx, target)
	if err != nil && !errors.Is(err, ErrSubscribersNotFound) {
		return 0, err
	}

	tokens := collectTokens(subscribers)
	if len(tokens) == 0 {
		return 0, nil
	}

	notification := PushNotification{
		Title:    outcome.Notification.Title,
		Body:     outcome.Notification.Body,
		ImageURL: s.imageURL,
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
		errs  []error
	)

	for _, batchTokens := range types.Chunk(tokens, maxBatchTokens) {
		batch := MessageBatch{Tokens: batchTokens, Notification: notification}

		wg.Add(1)
		go func() {
			defer wg.Done()

			sent, err := s.pushSender.SendBatch(ctx, batch)

			mu.Lock()
			defer mu.Unlock()

			total += sent
			if err != nil {
				errs = append(errs, err)
			}
		}()
	}

	wg.Wait()
	return total, errors.Join(errs...)
}

// collectTokens extracts the usable push tokens from a subscriber mapping,
// dropping entries whose token is empty.
func collectTokens(subscribers map[string]string) []string {
	tokens := make([]string, 0, len(subscribers))
	for _, token := range subscribers {
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens
}
