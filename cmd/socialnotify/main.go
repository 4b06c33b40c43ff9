package main

import (
	"context"
	"log"
	"time"

	"github.com/openlake/socialnotify/internal/config"
	"github.com/openlake/socialnotify/internal/handlers/cli"
	"github.com/openlake/socialnotify/internal/infra/nearlake"
	"github.com/openlake/socialnotify/internal/infra/push/fcm"
	"github.com/openlake/socialnotify/internal/infra/storage/redis"
	"github.com/openlake/socialnotify/internal/lakestream"
	"github.com/openlake/socialnotify/internal/notifyproc"
	"github.com/openlake/socialnotify/internal/notifywatch"
	"github.com/openlake/socialnotify/internal/pkg/logger"
	"github.com/openlake/socialnotify/internal/pkg/resilience/retry"
	"github.com/openlake/socialnotify/internal/pkg/telemetry"
	httptransport "github.com/openlake/socialnotify/internal/pkg/transport/http"
	"github.com/openlake/socialnotify/internal/subscription"
)

const serviceName = "socialnotify"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("initializing telemetry: %v", err)
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	redisClient, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal(ctx, "error connecting to redis", "error", err)
	}
	defer redisClient.Close()

	lakeHTTPClient := httptransport.NewClient(
		httptransport.WithTimeout(30 * time.Second),
	)
	lakeClient := nearlake.NewClient(lakeHTTPClient.StandardClient(), cfg.LakeBaseURL)

	// Push delivery is best effort: no transport-level retries either.
	pushHTTPClient := httptransport.NewClient(
		httptransport.WithTimeout(30*time.Second),
		httptransport.WithRetryMax(0),
	)
	pushClient := fcm.NewClient(pushHTTPClient.StandardClient(), cfg.FCMEndpoint, cfg.FCMServerKey)

	notifyOpts := make([]notifywatch.Option, 0, 1)
	if cfg.NotificationImageURL != "" {
		notifyOpts = append(notifyOpts, notifywatch.WithNotificationImageURL(cfg.NotificationImageURL))
	}

	var (
		notifywatchService  = notifywatch.New(redisClient, pushClient, notifyOpts...)
		lakestreamService   = lakestream.New(lakeClient, cfg.StartBlockHeight, lakestream.WithRetry(retry.New()))
		notifyprocService   = notifyproc.New(lakestreamService, notifywatchService)
		subscriptionService = subscription.New(redisClient)
	)

	if err := cli.Run(ctx, subscriptionService, notifyprocService, cfg.HealthListenAddr); err != nil {
		logger.Fatal(ctx, "error running cli", "error", err)
	}
}
