package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// postgresErrorCode returns the SQLSTATE code carried by a pgx driver error,
// or an empty string when err did not originate from PostgreSQL.
func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// classifyWriteError maps driver-level failures of an INSERT to the store's
// sentinel errors. Constraint violations (NOT NULL, CHECK, string length)
// indicate data the validation layer should have rejected; everything else
// is a generic execution failure.
func classifyWriteError(err error) error {
	switch postgresErrorCode(err) {
	case pgerrcode.NotNullViolation,
		pgerrcode.CheckViolation,
		pgerrcode.StringDataRightTruncationDataException:
		return ErrConstraintViolation
	default:
		return ErrExecutingStatement
	}
}
