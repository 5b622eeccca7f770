package http

import (
	"github.com/greenhouse-iot/telemetry-api/internal/config"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/ratelimit"
	"github.com/greenhouse-iot/telemetry-api/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  ratelimit.Limiter

	maxRequestBytes int64
	corsOrigins     []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter ratelimit.Limiter, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		limiter:         limiter,
		maxRequestBytes: cfg.MaxRequestBytes,
		corsOrigins:     cfg.CORSOrigins,
		logger:          logger,
	}
}
