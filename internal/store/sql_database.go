package store

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/migrations"
)

// Dialect names understood by goose.
const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

// DB wraps a database/sql pool together with the dialect specific pieces the
// ledger queries need.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	txOptions          *sql.TxOptions
	lockRows           bool
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations for the DB dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// conflictOr maps err to [ErrTransactionConflict] when the dialect classifier
// reports a conflict, otherwise wraps it with base.
func (db *DB) conflictOr(base, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Conflict {
		return fmt.Errorf("%w: %w", ErrTransactionConflict, err)
	}

	return fmt.Errorf("%w: %w", base, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
