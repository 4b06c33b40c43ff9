// Package chflow provides context-aware helpers for sending to and receiving
// from channels, so pipeline stages honor cancellation without repeating the
// same select block everywhere.
package chflow

import "context"

// Receive waits for a value from ch or for the context to be canceled. The
// boolean is false when the context ended first or the channel was closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var data T
	select {
	case <-ctx.Done():
		return data, false
	case data, ok := <-ch:
		return data, ok
	}
}

// Send attempts to deliver a value to ch unless the context is canceled
// first. It reports whether the send happened.
func Send[T any](ctx context.Context, ch chan<- T, data T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}
