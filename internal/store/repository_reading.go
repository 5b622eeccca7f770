package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/models"
)

// readingRepository is the SQL-backed implementation of [ReadingRepository].
// It executes all reading operations against the "readings" table using the
// embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (device_id, sensor, filter values, etc.).
type readingRepository struct {
	*DB
	logger *logger.Logger
}

// NewReadingRepository constructs a [ReadingRepository] backed by the
// provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewReadingRepository(db *DB, logger *logger.Logger) ReadingRepository {
	return &readingRepository{
		DB:     db,
		logger: logger,
	}
}

// Save persists one reading and returns the stored row, including the
// server-assigned id, exactly as the database recorded it.
//
// The insert is a single statement: it either fully commits and the row comes
// back via RETURNING, or it fails and nothing persists.
func (r *readingRepository) Save(ctx context.Context, reading models.Reading) (models.Reading, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildSaveReadingQuery(reading)
	if err != nil {
		log.Err(err).
			Str("func", "readingRepository.Save").
			Str("device_id", reading.DeviceID).
			Msg("failed to build insert query")
		return models.Reading{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var saved models.Reading
	scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&saved.ID,
		&saved.DeviceID,
		&saved.Sensor,
		&saved.Value,
		&saved.Unit,
		&saved.RecordedAt,
	)
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "readingRepository.Save").
			Str("device_id", reading.DeviceID).
			Str("sensor", reading.Sensor).
			Str("pg_code", postgresErrorCode(scanErr)).
			Msg("failed to insert reading")

		// RETURNING yields no row only when the insert persisted nothing
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Reading{}, fmt.Errorf("%w: %w", ErrReadingNotSaved, scanErr)
		}
		return models.Reading{}, fmt.Errorf("%w: %w", classifyWriteError(scanErr), scanErr)
	}

	return saved, nil
}

// Find retrieves the page of readings matching filter, ordered by
// recorded_at descending (ties broken by id), together with the total number
// of matching rows.
//
// The count query deliberately re-runs the filter without the pagination
// window; the total is exact, not an estimate, so it stays correct for
// clients that page through the full result set.
func (r *readingRepository) Find(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildFindReadingsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "readingRepository.Find").
			Msg("failed to build list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "readingRepository.Find").
			Str("device_id", filter.DeviceID).
			Str("sensor", filter.Sensor).
			Str("pg_code", postgresErrorCode(queryErr)).
			Msg("failed to execute query for listing readings")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	results := make([]models.Reading, 0, filter.Limit)

	for rows.Next() {
		var item models.Reading

		scanErr := rows.Scan(
			&item.ID,
			&item.DeviceID,
			&item.Sensor,
			&item.Value,
			&item.Unit,
			&item.RecordedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "readingRepository.Find").
				Msg("failed to scan reading row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "readingRepository.Find").
			Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	total, err := r.count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *readingRepository) count(ctx context.Context, filter models.ReadingFilter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildCountReadingsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "readingRepository.count").
			Msg("failed to build count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); scanErr != nil {
		log.Err(scanErr).
			Str("func", "readingRepository.count").
			Str("device_id", filter.DeviceID).
			Str("sensor", filter.Sensor).
			Msg("failed to count matching readings")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return total, nil
}
