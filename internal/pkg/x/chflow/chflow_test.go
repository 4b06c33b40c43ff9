package chflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceive(t *testing.T) {
	t.Run("successful receive", func(t *testing.T) {
		ch := make(chan int, 1)
		ch <- 42

		value, ok := Receive(t.Context(), ch)

		assert.True(t, ok)
		assert.Equal(t, 42, value)
	})

	t.Run("context canceled before receive", func(t *testing.T) {
		ch := make(chan int)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		value, ok := Receive(ctx, ch)

		assert.False(t, ok)
		assert.Equal(t, 0, value)
	})

	t.Run("channel closed", func(t *testing.T) {
		ch := make(chan string)
		close(ch)

		value, ok := Receive(t.Context(), ch)

		assert.False(t, ok)
		assert.Equal(t, "", value)
	})
}

func TestSend(t *testing.T) {
	t.Run("successful send", func(t *testing.T) {
		ch := make(chan int, 1)

		ok := Send(t.Context(), ch, 42)

		assert.True(t, ok)
		assert.Equal(t, 42, <-ch)
	})

	t.Run("context canceled before send", func(t *testing.T) {
		ch := make(chan int)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		ok := Send(ctx, ch, 42)

		assert.False(t, ok)

		select {
		case <-ch:
			t.Fatal("expected no value to be sent")
		default:
		}
	})

	t.Run("concurrent send and receive", func(t *testing.T) {
		ch := make(chan int)
		ctx := t.Context()

		receiveDone := make(chan struct{})
		var (
			receivedValue int
			receiveOk     bool
		)

		go func() {
			receivedValue, receiveOk = Receive(ctx, ch)
			close(receiveDone)
		}()

		sendOk := Send(ctx, ch, 99)
		<-receiveDone

		assert.True(t, sendOk)
		assert.True(t, receiveOk)
		assert.Equal(t, 99, receivedValue)
	})
}

func TestReceiveAndSendIntegration(t *testing.T) {
	t.Run("pipeline terminates on cancellation", func(t *testing.T) {
		input := make(chan int)
		output := make(chan int)
		ctx, cancel := context.WithCancel(t.Context())

		pipelineDone := make(chan struct{})
		go func() {
			defer close(pipelineDone)
			for {
				value, ok := Receive(ctx, input)
				if !ok {
					return
				}

				if !Send(ctx, output, value*2) {
					return
				}
			}
		}()

		input <- 10

		result, ok := Receive(ctx, output)
		assert.True(t, ok)
		assert.Equal(t, 20, result)

		cancel()

		select {
		case <-pipelineDone:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("pipeline should terminate when the context is canceled")
		}
	})
}
