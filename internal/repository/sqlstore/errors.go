package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/jwalitptl/hims-api/internal/repository"
)

// PostgreSQL SQLSTATE codes.
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// classify maps driver constraint errors onto the repository sentinels so
// callers never see a raw driver error for an integrity failure.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", repository.ErrForeignKeyViolation, pqErr.Message)
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrUniqueViolation, pqErr.Message)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", repository.ErrForeignKeyViolation, liteErr.Error())
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%w: %s", repository.ErrUniqueViolation, liteErr.Error())
		}
	}

	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
