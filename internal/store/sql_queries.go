package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/greenhouse-iot/telemetry-api/models"
)

const readingsTable = "readings"

var readingColumns = []string{"id", "device_id", "sensor", "value", "unit", "recorded_at"}

// buildSaveReadingQuery builds the INSERT for one reading. The stored row is
// returned via RETURNING so the caller sees the server-assigned id exactly as
// persisted.
func (db *DB) buildSaveReadingQuery(reading models.Reading) (string, []any, error) {
	return sq.Insert(readingsTable).
		Columns("device_id", "sensor", "value", "unit", "recorded_at").
		Values(reading.DeviceID, reading.Sensor, reading.Value, reading.Unit, reading.RecordedAt).
		Suffix("RETURNING id, device_id, sensor, value, unit, recorded_at").
		PlaceholderFormat(db.placeholder).
		ToSql()
}

// buildFindReadingsQuery builds the paginated SELECT for the list operation.
// Filters are equality matches added only when present; ordering is
// recorded_at descending with id as a deterministic tie-break.
func (db *DB) buildFindReadingsQuery(filter models.ReadingFilter) (string, []any, error) {
	query := sq.Select(readingColumns...).
		From(readingsTable).
		OrderBy("recorded_at DESC", "id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		PlaceholderFormat(db.placeholder)

	return applyReadingFilter(query, filter).ToSql()
}

// buildCountReadingsQuery builds the filter-scoped COUNT that accompanies
// every list query. It deliberately ignores limit and offset: the total must
// describe the whole matching set, not the returned page.
func (db *DB) buildCountReadingsQuery(filter models.ReadingFilter) (string, []any, error) {
	query := sq.Select("COUNT(*)").
		From(readingsTable).
		PlaceholderFormat(db.placeholder)

	if filter.DeviceID != "" {
		query = query.Where(sq.Eq{"device_id": filter.DeviceID})
	}
	if filter.Sensor != "" {
		query = query.Where(sq.Eq{"sensor": filter.Sensor})
	}

	return query.ToSql()
}

func applyReadingFilter(query sq.SelectBuilder, filter models.ReadingFilter) sq.SelectBuilder {
	if filter.DeviceID != "" {
		query = query.Where(sq.Eq{"device_id": filter.DeviceID})
	}
	if filter.Sensor != "" {
		query = query.Where(sq.Eq{"sensor": filter.Sensor})
	}

	return query
}
