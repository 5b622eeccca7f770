package service

import (
	"github.com/greenhouse-iot/telemetry-api/internal/config"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/store"
)

type Services struct {
	AuthService    AuthService
	ReadingService ReadingService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(cfg, logger),
		ReadingService: NewReadingService(storages.ReadingRepository, logger),
	}
}
