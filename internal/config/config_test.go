package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlake/socialnotify/internal/pkg/validator"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("SOCIALNOTIFY_LAKE_BASE_URL", "https://lake.example.com/mainnet")
	t.Setenv("SOCIALNOTIFY_START_BLOCK_HEIGHT", "105793821")
	t.Setenv("SOCIALNOTIFY_REDIS_ADDR", "localhost:6379")
	t.Setenv("SOCIALNOTIFY_FCM_SERVER_KEY", "test-server-key")
}

func TestLoad(t *testing.T) {
	t.Run("loads a complete configuration", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "https://lake.example.com/mainnet", cfg.LakeBaseURL)
		assert.Equal(t, uint64(105793821), cfg.StartBlockHeight)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "test-server-key", cfg.FCMServerKey)
	})

	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, ":3000", cfg.HealthListenAddr)
		assert.False(t, cfg.TelemetryEnabled)
	})

	t.Run("reads optional overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SOCIALNOTIFY_LOG_LEVEL", "debug")
		t.Setenv("SOCIALNOTIFY_REDIS_DB", "3")
		t.Setenv("SOCIALNOTIFY_NOTIFICATION_IMAGE_URL", "https://example.com/icon.png")
		t.Setenv("SOCIALNOTIFY_TELEMETRY_ENABLED", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, "https://example.com/icon.png", cfg.NotificationImageURL)
		assert.True(t, cfg.TelemetryEnabled)
	})

	t.Run("fails when a required variable is missing", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SOCIALNOTIFY_FCM_SERVER_KEY", "")

		_, err := Load()

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("fails on a malformed numeric value", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SOCIALNOTIFY_START_BLOCK_HEIGHT", "not-a-number")

		_, err := Load()

		assert.Error(t, err)
	})
}
