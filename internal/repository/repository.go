package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// isUniqueViolation reports an Oracle unique-constraint error (ORA-00001).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00001")
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
