// Package database provides database connection management for the taxifleet
// application. It uses the pgx driver with connection pooling.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avissapr/taxifleet/internal/config"
)

// DBInterface mirrors the pgxpool.Pool methods the repositories use.
// Tests replace the global DB with a pgxmock pool through this interface.
type DBInterface interface {
	// Query executes a query that returns rows
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// QueryRow executes a query that returns at most one row
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row

	// Exec executes a query without returning any rows
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)

	// Ping verifies a connection to the database is still alive
	Ping(ctx context.Context) error

	// Close closes all connections in the pool
	Close()
}

// DB is the global database connection pool. In production it holds a
// *pgxpool.Pool; tests swap in a mock implementation.
var DB DBInterface

// Connect establishes the connection pool described by cfg and verifies
// connectivity. On success the global DB is set.
func Connect(cfg config.Config) error {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = pool
	return nil
}

// Close closes the connection pool. Safe to call when DB is nil.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// IsConnected reports whether the pool is established and healthy.
func IsConnected() bool {
	if DB == nil {
		return false
	}
	return DB.Ping(context.Background()) == nil
}
