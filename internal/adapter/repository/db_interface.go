package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// DatabaseIface defines the database interface for testing
type DatabaseIface interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}
