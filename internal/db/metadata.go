//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-salesload/internal/logging"
)

// MetadataTable records the most recent load.
const MetadataTable = "salesload_metadata"

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS salesload_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// Execer is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Querier is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SaveMetadata replaces the stored load metadata with values.
func SaveMetadata(ctx context.Context, db Execer, values map[string]string) error {
	if _, err := db.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}
	if _, err := db.Exec(ctx, "DELETE FROM salesload_metadata"); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		_, err := db.Exec(ctx, `
            INSERT INTO salesload_metadata (key, value) VALUES ($1, $2)
        `, key, values[key])
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Int("keys", len(keys)).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, db Querier, key string) (string, error) {
	var value string
	err := db.QueryRow(ctx, `
        SELECT value FROM salesload_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, db Querier) (map[string]string, error) {
	rows, err := db.Query(ctx, `SELECT key, value FROM salesload_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, db Querier) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, MetadataTable).Scan(&exists)
	return exists, err
}
