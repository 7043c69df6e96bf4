package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
	"github.com/sinahatake/currency-exchange-api/pkg/database"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// withConn runs fn on a pooled connection that is released when fn returns.
// Errors that are not already application errors are reported as storage failures.
func (r *BaseRepository) withConn(ctx context.Context, op string, fn func(conn *pgxpool.Conn) error) error {
	err := database.WithConn(ctx, r.Pool, fn)
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewStorageError("failed to "+op, err)
}

// Ping checks that a connection can be acquired and the database answers.
func (r *BaseRepository) Ping(ctx context.Context) error {
	return r.withConn(ctx, "ping database", func(conn *pgxpool.Conn) error {
		return conn.Ping(ctx)
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
