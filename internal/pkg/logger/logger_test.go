package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("rejects an invalid level", func(t *testing.T) {
		err := Init(WithLevel("not-a-level"))

		assert.Error(t, err)
	})

	t.Run("initializes the global logger", func(t *testing.T) {
		require.NoError(t, Init(WithLevel("error")))
		assert.NotNil(t, logger)
	})

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, Init(WithLevel("error")))

		first := logger
		require.NoError(t, Init(WithLevel("debug")))

		assert.Same(t, first, logger)
	})
}

func TestLogging(t *testing.T) {
	require.NoError(t, Init(WithLevel("error")))

	ctx := context.Background()

	t.Run("does not panic on the standard levels", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Debug(ctx, "debug message", "key", "value")
			Info(ctx, "info message", "key", "value")
			Warn(ctx, "warn message", "key", "value")
			Error(ctx, "error message", "key", "value")
		})
	})

	t.Run("panics at the panic level", func(t *testing.T) {
		assert.Panics(t, func() {
			Panic(ctx, "panic message")
		})
	})
}
