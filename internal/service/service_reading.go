package service

import (
	"context"
	"fmt"
	"time"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/store"
	"github.com/greenhouse-iot/telemetry-api/models"
)

// readingService is the concrete implementation of ReadingService.
type readingService struct {
	readingRepository store.ReadingRepository

	// now is the clock used for the recorded_at default; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewReadingService constructs a ReadingService wired to the given
// repository.
func NewReadingService(readingRepository store.ReadingRepository, logger *logger.Logger) ReadingService {
	return &readingService{
		readingRepository: readingRepository,
		now:               time.Now,
		logger:            logger,
	}
}

// Create validates req, fills the unit and recorded_at defaults, and
// persists the reading.
//
// Returns a *ValidationError when any field fails validation, a wrapped
// storage error when the insert fails, or the stored reading (including the
// server-assigned id) on success.
func (s *readingService) Create(ctx context.Context, req models.CreateReadingRequest) (models.Reading, error) {
	log := logger.FromContext(ctx)

	if err := validateCreateReadingRequest(req); err != nil {
		log.Warn().Err(err).Msg("invalid reading payload")
		return models.Reading{}, err
	}

	recordedAt := s.now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	reading := models.Reading{
		DeviceID:   req.DeviceID,
		Sensor:     req.Sensor,
		Value:      *req.Value,
		Unit:       req.Unit,
		RecordedAt: recordedAt,
	}

	saved, err := s.readingRepository.Save(ctx, reading)
	if err != nil {
		log.Err(err).
			Str("device_id", reading.DeviceID).
			Str("sensor", reading.Sensor).
			Msg("reading creation ended with error")
		return models.Reading{}, fmt.Errorf("reading creation ended with error: %w", err)
	}

	log.Info().
		Str("device_id", saved.DeviceID).
		Str("sensor", saved.Sensor).
		Int64("id", saved.ID).
		Msg("created reading")

	return saved, nil
}

// List validates the pagination bounds and returns the matching page plus
// the filter-scoped total.
func (s *readingService) List(ctx context.Context, filter models.ReadingFilter) (models.ReadingsPage, error) {
	log := logger.FromContext(ctx)

	if err := validateReadingFilter(filter); err != nil {
		log.Warn().Err(err).Msg("invalid list parameters")
		return models.ReadingsPage{}, err
	}

	items, total, err := s.readingRepository.Find(ctx, filter)
	if err != nil {
		log.Err(err).
			Str("device_id", filter.DeviceID).
			Str("sensor", filter.Sensor).
			Msg("reading search failed")
		return models.ReadingsPage{}, fmt.Errorf("reading search failed: %w", err)
	}

	return models.ReadingsPage{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}
