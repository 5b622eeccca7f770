package store

import (
	"context"
	"fmt"

	"github.com/greenhouse-iot/telemetry-api/internal/config"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
)

// Storages aggregates all repositories backed by the shared database
// connection.
type Storages struct {
	ReadingRepository ReadingRepository
}

// NewStorages connects to the configured database, applies pending
// migrations, and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		ReadingRepository: NewReadingRepository(db, logger),
	}, nil
}
