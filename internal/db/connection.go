// Package db provides database connection management for pgedge-salesload.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-salesload/internal/logging"
)

// DefaultConnectTimeout bounds connection setup.
const DefaultConnectTimeout = 30 * time.Second

// Connect opens a single connection to the PostgreSQL database. The load
// runs on one connection; callers must Close it.
func Connect(ctx context.Context, connString string) (*pgx.Conn, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}

	logging.Debug().
		Str("host", config.Host).
		Uint16("port", config.Port).
		Str("database", config.Database).
		Msg("Connecting to database")

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// Verify connection
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", config.Host).
		Str("database", config.Database).
		Msg("Connected to database")

	return conn, nil
}
