package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/greenhouse-iot/telemetry-api/internal/config"
	handlerhttp "github.com/greenhouse-iot/telemetry-api/internal/handler/http"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/ratelimit"
	"github.com/greenhouse-iot/telemetry-api/internal/server"
	"github.com/greenhouse-iot/telemetry-api/internal/service"
	"github.com/greenhouse-iot/telemetry-api/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env file is fine; the environment itself still applies
	_ = godotenv.Load()

	log := logger.NewLogger("telemetry-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg.App, log)

	var limiter ratelimit.Limiter = ratelimit.NewNoopLimiter()
	if cfg.App.RateLimitEnabled {
		swl := ratelimit.NewSlidingWindowLimiter(cfg.App.RateLimitPerMinute, time.Minute, log)
		defer swl.Close()
		limiter = swl
		log.Info().Int("per_minute", cfg.App.RateLimitPerMinute).Msg("rate limiting enabled")
	}

	handler := handlerhttp.NewHandler(services, limiter, cfg.App, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
