package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/greenhouse-iot/telemetry-api/internal/config"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/migrations"
)

// Dialect names understood by the connection layer and the migration runner.
const (
	DialectPostgres = "pgx"
	DialectSQLite   = "sqlite3"
)

// DB wraps the shared *sql.DB handle together with the driver dialect and the
// placeholder format the query builder must use for that dialect.
type DB struct {
	*sql.DB
	dialect     string
	placeholder sq.PlaceholderFormat
	logger      *logger.Logger
}

// NewConnect opens the database described by cfg and verifies the connection
// with a ping.
//
// The driver is chosen from the DSN: a "postgres://" or "postgresql://"
// prefix selects the pgx driver, anything else is treated as a SQLite file
// path. SQLite keeps local development free of external services; production
// deployments point the DSN at PostgreSQL.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect := DialectSQLite
	placeholder := sq.PlaceholderFormat(sq.Question)
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		dialect = DialectPostgres
		placeholder = sq.Dollar
	}

	conn, err := sql.Open(dialect, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Str("dialect", dialect).Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	if dialect == DialectPostgres {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(4)
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnect").Str("dialect", dialect).Msg("connected to database successfully")

	db := &DB{
		DB:          conn,
		dialect:     dialect,
		placeholder: placeholder,
		logger:      log,
	}

	return db, nil
}

// Migrate applies all pending schema migrations for the connected dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
