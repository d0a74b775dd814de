// Package duckdb provides a DuckDB database adapter for sqlfixture.
//
// DuckDB runs in-process, which makes it the adapter of choice for running
// fixture suites without a database server.
package duckdb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlfixture/pkg/adapter"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// MemoryPath is the DuckDB path for an in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Name returns the registered adapter name.
func (a *Adapter) Name() string {
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// An empty path opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = MemoryPath
	}

	a.Logger.Debug("opening duckdb", slog.String("path", path))

	if err := a.Open(ctx, "duckdb", path, cfg); err != nil {
		return fmt.Errorf("failed to open duckdb: %w", err)
	}
	return nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
