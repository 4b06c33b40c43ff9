// Package config loads the process configuration from environment variables
// and validates it. Configuration is read once at startup; nothing reloads
// at runtime.
package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/openlake/socialnotify/internal/pkg/validator"
)

// envPrefix namespaces every environment variable, e.g. SOCIALNOTIFY_REDIS_ADDR.
const envPrefix = "socialnotify"

// Config holds everything the process needs to start.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Block stream source.
	LakeBaseURL      string `envconfig:"LAKE_BASE_URL" validate:"required"`
	StartBlockHeight uint64 `envconfig:"START_BLOCK_HEIGHT" validate:"required"`

	// Subscriber registry.
	RedisAddr     string `envconfig:"REDIS_ADDR" validate:"required"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB"`

	// Push delivery.
	FCMEndpoint          string `envconfig:"FCM_ENDPOINT"`
	FCMServerKey         string `envconfig:"FCM_SERVER_KEY" validate:"required"`
	NotificationImageURL string `envconfig:"NOTIFICATION_IMAGE_URL"`

	HealthListenAddr string `envconfig:"HEALTH_LISTEN_ADDR" default:":3000"`

	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, validator.Validate(cfg)
}
