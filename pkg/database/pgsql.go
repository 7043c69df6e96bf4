package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultMaxConns is the fixed size of the connection pool when none is configured.
const DefaultMaxConns int32 = 10

// ErrEmptyDatabaseURL is returned by NewPgxPool when no connection string is given.
var ErrEmptyDatabaseURL = errors.New("database URL cannot be empty")

// NewPgxPool creates a fixed-size PostgreSQL connection pool.
// Callers block in Acquire while all maxConns connections are checked out.
// When enableDBCheck is set the pool is pinged before it is returned.
func NewPgxPool(ctx context.Context, databaseURL string, maxConns int32, enableDBCheck bool) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, ErrEmptyDatabaseURL
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	config.MaxConns = maxConns
	config.MinConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if enableDBCheck {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		slog.Info("Successfully connected to PostgreSQL database.", slog.Int("max_conns", int(maxConns)))
	}
	return pool, nil
}

// WithConn acquires a connection from the pool, runs fn with it and releases the
// connection on every exit path, including a panic inside fn.
func WithConn(ctx context.Context, pool *pgxpool.Pool, fn func(conn *pgxpool.Conn) error) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()
	return fn(conn)
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed.")
	}
}
