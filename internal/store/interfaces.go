package store

import (
	"context"

	"github.com/greenhouse-iot/telemetry-api/models"
)

// ReadingRepository is the persistence boundary for readings.
type ReadingRepository interface {
	// Save persists one validated reading and returns the stored row
	// including the server-assigned ID.
	Save(ctx context.Context, reading models.Reading) (models.Reading, error)

	// Find returns the page of readings matching filter, ordered by
	// recorded_at descending, together with the total number of matching
	// rows regardless of the pagination window.
	Find(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, int64, error)
}
