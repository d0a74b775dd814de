// Package adapter provides the database adapter contract used by sqlfixture.
//
// Concrete adapters live in pkg/adapters/ subdirectories and register
// themselves with this package from their init functions.
package adapter

import (
	"context"
	"database/sql"
)

// Config holds connection settings for an adapter.
type Config struct {
	Type     string
	Path     string // file-based databases (DuckDB); empty means in-memory
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Options  map[string]string
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Name returns the registered adapter name (e.g. "postgres").
	Name() string

	// Connect establishes the single connection used for the rest of the run.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	// Driver errors are returned unmodified.
	Query(ctx context.Context, sql string) (*sql.Rows, error)
}
